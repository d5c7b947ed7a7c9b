package saz

// Session is one reconstructed request/response exchange.
//
// Request and Response hold the raw text of the paired archive entries; they
// share storage with the Entry values they were read from.
type Session struct {
	Index        uint32 `json:"index"`
	Status       uint32 `json:"status"`
	URL          string `json:"url"`
	BodyLength   uint64 `json:"body_length"`
	RequestPath  string `json:"request_path"`
	ResponsePath string `json:"response_path"`
	Request      string `json:"request"`
	Response     string `json:"response"`
}

// NewSession runs the field extractors over a request/response pair.
// A missing request line or status line is an error; a missing
// Content-Length leaves BodyLength at 0.
func NewSession(index uint32, req, resp Entry) (Session, error) {
	url, err := ExtractURL(req.Content)
	if err != nil {
		return Session{}, newError(ErrInvalid, "extract url", req.Path, err)
	}

	status, err := ExtractStatus(resp.Content)
	if err != nil {
		return Session{}, newError(ErrInvalid, "extract status", resp.Path, err)
	}

	return Session{
		Index:        index,
		Status:       status,
		URL:          url,
		BodyLength:   ExtractContentLength(resp.Content),
		RequestPath:  req.Path,
		ResponsePath: resp.Path,
		Request:      req.Content,
		Response:     resp.Content,
	}, nil
}
