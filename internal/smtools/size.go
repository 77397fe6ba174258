package smtools

import (
	"fmt"
	"strings"

	"github.com/containerd/errdefs"
	units "github.com/docker/go-units"
)

// sizeUnits are the 1024-based units used by FormatSize. TB is terminal.
var sizeUnits = [...]string{"bytes", "KB", "MB", "GB", "TB"}

// SizeFormat selects how DirSize results are rendered.
type SizeFormat string

const (
	// SizeFormatBinary renders with FormatSize, e.g. "1.00000000 KB".
	SizeFormatBinary SizeFormat = "binary"
	// SizeFormatIEC renders with IEC suffixes, e.g. "1KiB".
	SizeFormatIEC SizeFormat = "iec"
	// SizeFormatSI renders with decimal SI suffixes, e.g. "1.024kB".
	SizeFormatSI SizeFormat = "si"
)

// ParseSizeFormat validates s as a SizeFormat. The empty string selects
// SizeFormatBinary.
func ParseSizeFormat(s string) (SizeFormat, error) {
	switch f := SizeFormat(strings.ToLower(s)); f {
	case "":
		return SizeFormatBinary, nil
	case SizeFormatBinary, SizeFormatIEC, SizeFormatSI:
		return f, nil
	default:
		return "", fmt.Errorf("unknown size format %q (want binary, iec or si): %w", s, errdefs.ErrInvalidArgument)
	}
}

// FormatSize renders a byte count with 1024-based units and eight decimal
// places, e.g. "1.50000000 KB". Values of 1024 TB and above stay in TB.
// Negative values are rendered with a leading minus sign.
func FormatSize(size int64) string {
	sign := ""
	magnitude := float64(size)
	if size < 0 {
		sign = "-"
		magnitude = -magnitude
	}

	unit := sizeUnits[0]
	for i := 1; magnitude >= 1024 && i < len(sizeUnits); i++ {
		magnitude /= 1024
		unit = sizeUnits[i]
	}
	return fmt.Sprintf("%s%.8f %s", sign, magnitude, unit)
}

// FormatSizeAs renders size in the given format.
func FormatSizeAs(size int64, format SizeFormat) string {
	switch format {
	case SizeFormatIEC:
		return units.BytesSize(float64(size))
	case SizeFormatSI:
		return units.HumanSize(float64(size))
	default:
		return FormatSize(size)
	}
}

// DirSize returns the total size in bytes of every regular file below dir,
// at any depth. Directories, symlinks and other entry kinds count as zero.
//
// dir must be an existing directory, otherwise ErrNotADirectory is returned.
// A failure while walking aborts the sum and is returned.
func (t *Toolkit) DirSize(dir string) (int64, error) {
	p, err := t.requireDir(dir)
	if err != nil {
		return 0, fmt.Errorf("dir_path: %w", err)
	}

	w, err := t.Walk(p.String(), true)
	if err != nil {
		return 0, err
	}

	var total int64
	for w.Next() {
		if e := w.Entry(); e.IsFile() {
			total += e.Size()
		}
	}
	if err := w.Err(); err != nil {
		return 0, fmt.Errorf("computing size of %s: %w", p, err)
	}
	return total, nil
}
