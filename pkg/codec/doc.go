// Package codec implements the MYRA binary record format: encoding and
// decoding of registered Go struct values into an envelope's payload region
// with a length prefix and a trailing checksum.
//
// # Registering a message type
//
// A message type is any struct whose exported fields carry a `myra` tag
// naming the wire field and its logical type:
//
//	type GetBalanceRequest struct {
//	    AccountID string `myra:"accountId,string"`
//	}
//
//	c := codec.NewCodec()
//	c.Register(101, GetBalanceRequest{}, "GetBalanceRequest")
//
// Nullable fields are declared with a pointer Go type (*string, *int32,
// ...) for the same logical type tag; the codec emits a presence byte ahead
// of the value.
//
// # Wire format
//
// A MYRA payload is:
//
//	[ payload_length u32 ][ field_0 ]...[ field_n-1 ][ checksum u32 ]
//
// payload_length counts the bytes between itself and the checksum. The
// checksum is CRC-32 (IEEE) computed over that same region.
//
// # Layout cache
//
// The first Encode or Decode for a given Go type introspects its struct
// tags once and caches the result; every later call for that type reuses
// the cached field order, avoiding repeated reflection.
package codec
