package core

// csvcodec.go reads and writes the catalog CSV format:
//
//	name,price,stock
//
// There is no header row and no quoting. A line is split on its first two
// commas, so an embedded comma in the name corrupts the record. Malformed
// lines are reported and skipped; they never abort an import.

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseLine parses one catalog record. The error, if any, is a *ParseError.
func ParseLine(line string) (Product, error) {
	fields := strings.SplitN(line, ",", 3)
	if len(fields) < 3 {
		return Product{}, &ParseError{Line: line, Reason: "expected name,price,stock"}
	}

	name := fields[0]
	if strings.TrimSpace(name) == "" {
		return Product{}, &ParseError{Line: line, Reason: "empty name"}
	}

	price, err := decimal.NewFromString(strings.TrimSpace(fields[1]))
	if err != nil {
		return Product{}, &ParseError{Line: line, Reason: "invalid price"}
	}
	if price.IsNegative() {
		return Product{}, &ParseError{Line: line, Reason: "negative price"}
	}

	stock, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return Product{}, &ParseError{Line: line, Reason: "invalid stock"}
	}
	if stock < 0 {
		return Product{}, &ParseError{Line: line, Reason: "negative stock"}
	}

	return Product{Name: name, Price: price, Stock: stock}, nil
}

// FormatLine renders p as a catalog record without the trailing newline.
func FormatLine(p Product) string {
	return p.Name + "," + p.Price.String() + "," + strconv.Itoa(p.Stock)
}

// ReadCatalog parses every line of r. Well-formed records are returned in
// order; malformed ones are collected in the second return value. Blank
// lines are skipped silently. The error is only set when r itself fails.
func ReadCatalog(r io.Reader) (*Catalog, []*ParseError, error) {
	catalog := NewCatalog()
	var parseErrs []*ParseError

	err := scanLines(r, func(lineNo int, line string) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}

		p, err := ParseLine(line)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.LineNumber = lineNo
				parseErrs = append(parseErrs, pe)
				return nil
			}
			return err
		}

		catalog.Add(p)
		return nil
	})

	return catalog, parseErrs, err
}

// ImportCatalog reads a catalog CSV file. A file that cannot be opened
// yields ErrFileUnavailable and an empty catalog.
func ImportCatalog(path string) (*Catalog, []*ParseError, error) {
	f, err := os.Open(path)
	if err != nil {
		return NewCatalog(), nil, fileUnavailable("open", path, err)
	}
	defer f.Close()

	catalog, parseErrs, err := ReadCatalog(f)
	if err != nil {
		return catalog, parseErrs, fileUnavailable("read", path, err)
	}
	return catalog, parseErrs, nil
}

// WriteCatalog writes one record per product in catalog order.
func WriteCatalog(w io.Writer, c *Catalog) error {
	bw := bufio.NewWriter(w)
	for _, p := range c.Browse() {
		if _, err := bw.WriteString(FormatLine(p) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ExportCatalog overwrites path with the catalog. The data is written to a
// temporary file in the same directory and renamed into place, so a failed
// write never leaves a truncated catalog behind.
func ExportCatalog(c *Catalog, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fileUnavailable("create", path, err)
	}
	tmpName := tmp.Name()

	// CreateTemp uses 0600; the catalog is a shared data file
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fileUnavailable("chmod", path, err)
	}

	if err := WriteCatalog(tmp, c); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fileUnavailable("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fileUnavailable("write", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace catalog: %w", fileUnavailable("rename", path, err))
	}
	return nil
}
