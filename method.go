package ilreader

import (
	"github.com/rhinobytesoftware/ilreader/il"
	"github.com/rhinobytesoftware/ilreader/methodbody"
)

// Method is a fully decoded method body: its header fields, instructions
// and linked exception handlers.
type Method struct {
	Header *methodbody.Body
	*il.Body
}

// DecodeMethod parses the method body header at the start of data, decodes
// its code and links its exception clauses. opts are applied after the
// clauses read from the body.
func DecodeMethod(data []byte, r il.Resolver, opts ...il.Option) (*Method, error) {
	header, err := methodbody.Parse(data)
	if err != nil {
		return nil, err
	}

	all := make([]il.Option, 0, len(opts)+1)
	if len(header.Clauses) > 0 {
		all = append(all, il.WithClauses(header.Clauses))
	}
	all = append(all, opts...)

	body, err := il.Decode(header.Code, r, all...)
	if err != nil {
		return nil, err
	}
	return &Method{Header: header, Body: body}, nil
}
