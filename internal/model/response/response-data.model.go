package response

type ResponseData struct {
	Ec    int    `json:"ec"`
	Msg   string `json:"msg,omitempty"`
	Error string `json:"error,omitempty"`
	Total *int   `json:"total,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data any) ResponseData {
	return ResponseData{Ec: 200, Data: data}
}

// List wraps a slice in a success envelope carrying its length.
func List[T any](items []T) ResponseData {
	total := len(items)
	if items == nil {
		items = []T{}
	}
	return ResponseData{Ec: 200, Total: &total, Data: items}
}

// Message is a success envelope carrying only a human readable message.
func Message(msg string) ResponseData {
	return ResponseData{Ec: 200, Msg: msg}
}

// Redirect is the data payload telling the front-end which view to open.
type Redirect struct {
	Redirect string `json:"redirect"`
}
