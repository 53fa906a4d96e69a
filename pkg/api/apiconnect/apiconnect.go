// Package apiconnect binds the api messages to connect handlers and clients.
// Every handler and client speaks JSON through api.JSONCodec.
package apiconnect

import "fmt"

func errUnimplemented(procedure string) error {
	return fmt.Errorf("%s is not implemented", procedure)
}
