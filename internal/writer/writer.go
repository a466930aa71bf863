// Package writer implements the assembly listing output of a disassembled program.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/program"
)

const dataBytesPerLine = 16

type lineWriterFunc func(line string, byteCount int) error

// Writer implements the assembly listing output.
type Writer struct {
	app     *program.Program
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	OffsetComments bool // prefix comments with the address of the offset
	HexComments    bool // include the opcode bytes in the comments
}

// New creates a new writer.
func New(app *program.Program, writer io.Writer, options Options) *Writer {
	return &Writer{
		app:     app,
		options: options,
		writer:  writer,
	}
}

// Write writes the comment header followed by all code and data offsets.
func (w Writer) Write() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}
	return w.ProcessOffsets()
}

// WriteCommentHeader writes the CRC32 checksum and code base address as comments to the output.
func (w Writer) WriteCommentHeader() error {
	if _, err := fmt.Fprintf(w.writer, "; ROM CRC32 checksum: %08x\n", w.app.Checksum); err != nil {
		return fmt.Errorf("writing rom checksum: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Code base address: $%04x\n\n", w.app.CodeBaseAddress); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}
	return nil
}

// ProcessOffsets writes all code offsets, labels and their comments.
func (w Writer) ProcessOffsets() error {
	var previousLineWasCode bool
	offsets := w.app.Offsets

	for i := 0; i < len(offsets); i++ {
		offset := offsets[i]
		if offset.IsType(program.CodeContinuation) {
			continue
		}

		if err := w.writeLabel(i, offset); err != nil {
			return err
		}

		// print an empty line in case of data after code and vice versa
		isCode := offset.IsType(program.CodeOffset)
		if i > 0 && offset.Label == "" && isCode != previousLineWasCode {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		previousLineWasCode = isCode

		if isCode {
			if err := w.writeCodeLine(offset); err != nil {
				return fmt.Errorf("writing code line: %w", err)
			}
			continue
		}

		count, err := w.bundleDataWrites(i)
		if err != nil {
			return err
		}
		i += count - 1
	}
	return nil
}

// BundleDataWrites bundles writes of data bytes to print dataBytesPerLine bytes per line.
func (w Writer) BundleDataWrites(data []byte, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		buf := &strings.Builder{}
		buf.WriteString(".byte ")
		for j := range toWrite {
			if _, err := fmt.Fprintf(buf, "$%02x, ", data[i+j]); err != nil {
				return fmt.Errorf("writing data byte: %w", err)
			}
		}

		line := strings.TrimRight(buf.String(), ", ")

		if lineWriter != nil {
			if err := lineWriter(line, toWrite); err != nil {
				return fmt.Errorf("writing data line using custom writer: %w", err)
			}
		} else {
			if _, err := fmt.Fprintf(w.writer, "%s\n", line); err != nil {
				return fmt.Errorf("writing data line: %w", err)
			}
		}

		i += toWrite
		remaining -= toWrite
	}

	return nil
}

func (w Writer) writeLabel(index int, offset program.Offset) error {
	if offset.Label == "" {
		return nil
	}

	if index > 0 {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w.writer, "%s:\n", offset.Label); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

func (w Writer) writeCodeLine(offset program.Offset) error {
	comment, err := w.comment(offset, true)
	if err != nil {
		return err
	}

	if comment == "" {
		if _, err := fmt.Fprintf(w.writer, "  %s\n", offset.Code); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	} else {
		if _, err := fmt.Fprintf(w.writer, "  %-30s ; %s\n", offset.Code, comment); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

// comment builds the line comment from the address, the opcode bytes and
// the offset comment depending on the options.
func (w Writer) comment(offset program.Offset, includeHex bool) (string, error) {
	var parts []string
	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", offset.Address))
	}
	if w.options.HexComments && includeHex {
		hex, err := offset.HexCodeComment()
		if err != nil {
			return "", err
		}
		parts = append(parts, hex)
	}
	if offset.Comment != "" {
		parts = append(parts, offset.Comment)
	}
	return strings.Join(parts, " "), nil
}

// bundleDataWrites writes the data starting at the index and returns the
// number of consumed offsets.
func (w Writer) bundleDataWrites(startIndex int) (int, error) {
	data := w.getData(startIndex)

	currentIndex := startIndex
	lineWriter := func(line string, byteCount int) error {
		comment, err := w.comment(w.app.Offsets[currentIndex], false)
		if err != nil {
			return err
		}

		if comment == "" {
			_, err = fmt.Fprintf(w.writer, "%s\n", line)
		} else {
			_, err = fmt.Fprintf(w.writer, "%-32s ; %s\n", line, comment)
		}
		if err != nil {
			return fmt.Errorf("writing data line: %w", err)
		}

		currentIndex += byteCount
		return nil
	}

	if err := w.BundleDataWrites(data, lineWriter); err != nil {
		return 0, fmt.Errorf("writing data: %w", err)
	}
	return len(data), nil
}

// getData returns the data bytes starting at the index up to the next code
// offset or label.
func (w Writer) getData(startIndex int) []byte {
	var data []byte

	for i := startIndex; i < len(w.app.Offsets); i++ {
		offset := w.app.Offsets[i]
		if offset.IsType(program.CodeOffset | program.CodeContinuation) {
			break
		}
		// stop at first label after start index
		if i > startIndex && offset.Label != "" {
			break
		}
		data = append(data, offset.Data...)
	}

	return data
}
