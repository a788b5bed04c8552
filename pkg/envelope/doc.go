// Package envelope implements the fixed-header wire frame that carries a
// MYRA-encoded payload between peers.
//
// # Header layout
//
// Every envelope starts with a 29-byte, big-endian header:
//
//	[ length        u16 ]  offset 0
//	[ methodId      u16 ]  offset 2
//	[ correlationId u64 ]  offset 4
//	[ traceId       u128] offset 12, present iff flags bit 0 is set
//	[ flags         u8  ]  offset 28
//	[ payload       ...  ]  offset 29
//
// length is the total frame size including the header. Flag bits: 0 has
// trace id, 1 is response, 2 has error.
package envelope
