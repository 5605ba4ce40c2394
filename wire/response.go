package wire

// Kind tags the payload carried by a Response. Per the source's
// Response (see DESIGN.md, design note on untyped sums), the payload is
// explicitly one of an integer, a raw byte packet, or a list of
// sub-responses from a multi-packet receive.
type Kind int

const (
	KindNone Kind = iota
	KindInt
	KindBytes
	KindSub
)

// Response is the universal result of a bus operation. Exactly one of
// Int/Bytes/Subs is meaningful, selected by Kind; Errs is always
// populated with at least one ErrorKind.
type Response struct {
	Kind Kind
	Int  int64
	Bytes []byte
	Subs  []Response
	Errs  []ErrorKind
}

// OK reports whether every tag in Errs equals OK.
func (r Response) OK() bool {
	if len(r.Errs) == 0 {
		return false
	}
	for _, e := range r.Errs {
		if e != OK {
			return false
		}
	}
	return true
}

// Int64Response builds a successful integer-payload response.
func Int64Response(v int64) Response {
	return Response{Kind: KindInt, Int: v, Errs: []ErrorKind{OK}}
}

// BytesResponse builds a successful raw-packet response.
func BytesResponse(b []byte) Response {
	return Response{Kind: KindBytes, Bytes: b, Errs: []ErrorKind{OK}}
}

// SubsResponse builds a multi-packet response. errs must be the same
// length as subs: index i of errs is the validation result of subs[i].
// This mirrors the receive path's step 3b, which intentionally returns
// the raw sub-packet bodies as data alongside a parallel list of
// per-packet validation results.
func SubsResponse(subs []Response, errs []ErrorKind) Response {
	return Response{Kind: KindSub, Subs: subs, Errs: errs}
}

// WithErrs returns a copy of r with its error list replaced. Protocol
// codecs use this to attach validate()'s result onto a BytesResponse
// built before validation ran.
func (r Response) WithErrs(errs []ErrorKind) Response {
	r.Errs = errs
	return r
}

// ErrResponse builds a failed response carrying one or more error tags.
func ErrResponse(errs ...ErrorKind) Response {
	if len(errs) == 0 {
		errs = []ErrorKind{ErrRXError}
	}
	return Response{Errs: errs}
}
