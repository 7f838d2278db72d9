// Package encryption transforms files with AES in CTR mode.
// Files are split into block-aligned chunks that a fixed worker pool
// processes independently, reading and writing at each chunk's own offset.
// Encryption and decryption are the same operation.
package encryption
