// Package methodbody parses the CIL method body container: the tiny or fat
// header, the code bytes and the exception handling data sections that
// follow them.
//
//	body, err := methodbody.Parse(raw)
//	if err != nil {
//	    return err
//	}
//	instrs, err := il.Decode(body.Code, resolver, il.WithClauses(body.Clauses))
//
// Parse does not look inside the code; instruction decoding is the il
// package's job.
package methodbody
