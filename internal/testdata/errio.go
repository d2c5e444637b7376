package testdata

// ErrReader is an io.Reader that returns Data before failing with Err. With no Data it fails on the first Read.
type ErrReader struct {
	Data []byte
	Err  error
}

func (e *ErrReader) Read(p []byte) (n int, err error) {
	if len(e.Data) > 0 {
		n = copy(p, e.Data)
		e.Data = e.Data[n:]
		return n, nil
	}
	return 0, e.Err
}

// ErrWriter is an io.Writer that fails every Write with Err.
type ErrWriter struct {
	Err error
}

func (e *ErrWriter) Write(_ []byte) (n int, err error) {
	return 0, e.Err
}
