package apiclient

import "fmt"

// Problem mirrors the RFC 7807 problem response written by the metadata
// control plane's handlers.
type Problem struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (p *Problem) Error() string {
	return fmt.Sprintf("%s: %s", p.Title, p.Detail)
}

func (p *Problem) IsNotFound() bool     { return p.Status == 404 }
func (p *Problem) IsConflict() bool     { return p.Status == 409 }
func (p *Problem) IsDeleteMarker() bool { return p.Status == 405 }
func (p *Problem) IsBadRequest() bool   { return p.Status == 400 }
