package envelope

import "errors"

// ErrReleased is returned by any accessor called after Release.
var ErrReleased = errors.New("envelope: use after release")

// ErrPayloadUnderrun is returned by Payload when the length field claims a
// frame smaller than the header itself.
var ErrPayloadUnderrun = errors.New("envelope: length is smaller than header size")
