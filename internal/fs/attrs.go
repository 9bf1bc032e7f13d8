package fs

// Windows-style attribute bits as stored by WIM and FAT images.
const (
	AttrReadOnly     uint32 = 0x01
	AttrHidden       uint32 = 0x02
	AttrSystem       uint32 = 0x04
	AttrDirectory    uint32 = 0x10
	AttrArchive      uint32 = 0x20
	AttrNormal       uint32 = 0x80
	AttrReparsePoint uint32 = 0x0400
)

// FormatAttributes renders the attribute bits in the compact "RHSDA" style.
func FormatAttributes(attrs uint32) string {
	flags := []struct {
		bit  uint32
		char byte
	}{
		{AttrReadOnly, 'R'},
		{AttrHidden, 'H'},
		{AttrSystem, 'S'},
		{AttrDirectory, 'D'},
		{AttrArchive, 'A'},
		{AttrReparsePoint, 'L'},
	}
	out := make([]byte, 0, len(flags))
	for _, f := range flags {
		if attrs&f.bit != 0 {
			out = append(out, f.char)
		} else {
			out = append(out, '-')
		}
	}
	return string(out)
}
