package api

type WriteFileRequest struct {
	Owner   string `json:"owner"`
	Repo    string `json:"repo"`
	Path    string `json:"path"`
	Content string `json:"content"`
	Message string `json:"message"`
	Branch  string `json:"branch,omitempty"`
}

type WriteFileResponse struct {
	OK        bool   `json:"ok"`
	Path      string `json:"path"`
	Branch    string `json:"branch"`
	Committed bool   `json:"committed"`
}

type UploadFileResponse struct {
	OK       bool   `json:"ok"`
	Uploaded string `json:"uploaded"`
}

type UploadArchiveResponse struct {
	OK       bool `json:"ok"`
	Uploaded int  `json:"uploaded"`
}

type errorResponse struct {
	Error string `json:"error"`
}
