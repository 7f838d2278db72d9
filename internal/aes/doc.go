// Package aes implements the forward AES block transform from first principles.
// The S-box and round constants are derived from GF(2^8) arithmetic at package
// initialization. Only encryption is provided; CTR mode never needs the inverse.
package aes
