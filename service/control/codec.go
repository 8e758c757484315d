package control

import "encoding/binary"

const (
	// MessageSize is the size of a time message
	MessageSize = 4
	// DigestSize is the size of the digest a worker leaves on termination
	DigestSize = 64
)

// Encode returns simulated time t as a big-endian message
func Encode(t int32) [MessageSize]byte {
	var ret [MessageSize]byte
	binary.BigEndian.PutUint32(ret[:], uint32(t))
	return ret
}

// Decode converts a big-endian message back to simulated time
func Decode(message [MessageSize]byte) int32 {
	return int32(binary.BigEndian.Uint32(message[:]))
}

// AckByte returns the acknowledgement a worker has to send for time t: the
// least significant byte of the encoded message.
func AckByte(t int32) byte {
	message := Encode(t)
	return message[MessageSize-1]
}
