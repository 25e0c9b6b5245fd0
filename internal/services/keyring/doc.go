// Package keyring manages creation, loading and transfer of the shared
// session key.
//
// Both peers need the same key before a session can start. One peer
// generates it (or both derive it from a seed they agreed on), then it is
// either derived on each side or moved across in an encrypted transfer
// file. The record is persisted via the domain.KeyStore.
package keyring
