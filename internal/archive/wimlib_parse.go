package archive

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	fsutil "github.com/kk-code-lab/rwim/internal/fs"
)

// wimlib-imagex prints "Key = value" (dir --detailed) or "Key: value"
// (info) lines; both are accepted.
func splitField(line string) (string, string, bool) {
	sep := strings.IndexAny(line, "=:")
	if sep <= 0 {
		return "", "", false
	}
	key := strings.TrimSpace(line[:sep])
	value := strings.TrimSpace(line[sep+1:])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

// parseImageList reads the "Available Images" section of `wimlib-imagex info`.
func parseImageList(r io.Reader) ([]ImageInfo, error) {
	var images []ImageInfo
	var current *ImageInfo

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		key, value, ok := splitField(scanner.Text())
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "index":
			n, err := strconv.Atoi(value)
			if err != nil {
				continue
			}
			images = append(images, ImageInfo{Index: n})
			current = &images[len(images)-1]
		case "name":
			if current != nil {
				current.Name = value
			}
		case "description":
			if current != nil {
				current.Description = value
			}
		}
	}
	return images, scanner.Err()
}

var wimTimeLayouts = []string{
	"Mon Jan _2 15:04:05 2006 MST",
	"Mon Jan _2 15:04:05.000000000 2006 MST",
	time.ANSIC,
	time.RFC3339Nano,
}

func parseWimTime(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range wimTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// detailScanner turns `wimlib-imagex dir --detailed` output into entries.
// Each record starts with a "Full Path" line; the record is emitted when the
// next one starts or the stream ends.
type detailScanner struct {
	pending *fsutil.Entry
	emit    func(fsutil.Entry) error
}

func (d *detailScanner) flush() error {
	if d.pending == nil {
		return nil
	}
	entry := *d.pending
	d.pending = nil
	return d.emit(entry)
}

func (d *detailScanner) line(text string) error {
	key, value, ok := splitField(text)
	if !ok {
		return nil
	}
	switch strings.ToLower(key) {
	case "full path":
		if err := d.flush(); err != nil {
			return err
		}
		entry := fsutil.NewEntry(strings.Trim(value, `"`), 0)
		d.pending = &entry
	case "attributes":
		if d.pending == nil {
			return nil
		}
		raw := strings.Fields(value)
		if len(raw) == 0 {
			return nil
		}
		attrs, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(raw[0]), "0x"), 16, 32)
		if err != nil {
			return nil
		}
		d.pending.Attributes = uint32(attrs)
		d.pending.IsDir = d.pending.Attributes&fsutil.AttrDirectory != 0
	case "creation time":
		if d.pending != nil {
			d.pending.Created = parseWimTime(value)
		}
	case "last write time":
		if d.pending != nil {
			d.pending.Modified = parseWimTime(value)
		}
	case "last access time":
		if d.pending != nil {
			d.pending.Accessed = parseWimTime(value)
		}
	case "uncompressed size":
		if d.pending != nil {
			if n, err := strconv.ParseInt(strings.Fields(value + " 0")[0], 10, 64); err == nil {
				d.pending.Size = n
			}
		}
	}
	return nil
}

func scanDetailed(r io.Reader, emit func(fsutil.Entry) error) error {
	d := &detailScanner{emit: emit}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := d.line(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return d.flush()
}
