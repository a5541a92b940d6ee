package language

// IsBinaryContent reports whether the given byte slice looks like binary
// content. It scans the first 512 bytes for null bytes.
func IsBinaryContent(data []byte) bool {
	checkSize := 512
	if len(data) < checkSize {
		checkSize = len(data)
	}

	for i := 0; i < checkSize; i++ {
		if data[i] == 0 {
			return true
		}
	}
	return false
}
