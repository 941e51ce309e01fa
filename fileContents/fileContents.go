package fileContents

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/ledongthuc/pdf"

	"goqa/saxlike"
)

// ErrNoDocuments is returned when a corpus source holds no document.
var ErrNoDocuments = errors.New("no documents found")

// ErrNotText is returned for content that is not valid UTF-8.
var ErrNotText = errors.New("content is not decodable as text")

type textHandler struct {
	saxlike.VoidHandler
	textDataSB strings.Builder
}

func (h *textHandler) CharData(c xml.CharData) {
	h.textDataSB.Write(c)
	h.textDataSB.WriteString(" ")
}

func readMarkup(name string, reader io.Reader) (string, error) {
	handler := &textHandler{}
	parser := saxlike.NewParser(bufio.NewReader(reader), handler)
	if ext := strings.ToLower(filepath.Ext(name)); ext == ".html" || ext == ".htm" {
		parser.SetHTMLMode()
	}
	if err := parser.Parse(); err != nil {
		return "", fmt.Errorf("readMarkup: failed parsing `%s`: %w", name, err)
	}
	return handler.textDataSB.String(), nil
}

func readPDF(filePath string) (string, error) {
	fd, reader, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("readPDF: failed opening `%s`: %w", filePath, err)
	}
	defer fd.Close()
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("readPDF: failed extracting text from `%s`: %w", filePath, err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("readPDF: failed reading text from `%s`: %w", filePath, err)
	}
	return buf.String(), nil
}

func decodeText(name string, content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", fmt.Errorf("decodeText: `%s`: %w", name, ErrNotText)
	}
	return string(content), nil
}

// decode turns the raw bytes of a file into text according to its extension,
// compared case-insensitively. A trailing .gz is stripped first.
func decode(name string, content []byte) (string, error) {
	if strings.EqualFold(filepath.Ext(name), ".gz") {
		zr, err := gzip.NewReader(bytes.NewReader(content))
		if err != nil {
			return "", fmt.Errorf("decode: `%s` is not gzip: %w", name, err)
		}
		defer zr.Close()
		inflated, err := io.ReadAll(zr)
		if err != nil {
			return "", fmt.Errorf("decode: failed inflating `%s`: %w", name, err)
		}
		return decode(strings.TrimSuffix(name, filepath.Ext(name)), inflated)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xhtml", ".html", ".htm", ".xml", ".svg":
		if !utf8.Valid(content) {
			return "", fmt.Errorf("decode: `%s`: %w", name, ErrNotText)
		}
		return readMarkup(name, bytes.NewReader(content))
	default:
		return decodeText(name, content)
	}
}

// FromFilePath reads a single corpus file as text.
func FromFilePath(filePath string) (string, error) {
	if strings.EqualFold(filepath.Ext(filePath), ".pdf") {
		return readPDF(filePath)
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("FromFilePath: failed reading `%s`: %w", filePath, err)
	}
	return decode(filepath.Base(filePath), content)
}

// listFiles returns the non-hidden files directly inside directory, sorted by
// name. Symlinks are followed; a link that cannot be resolved is an error.
func listFiles(directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := os.Stat(filepath.Join(directory, entry.Name()))
		if err != nil {
			return nil, err
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

// FromDirectory maps the name of every file in dirPath to its text. Files are
// read concurrently; any failure fails the whole load.
func FromDirectory(dirPath string) (map[string]string, error) {
	files, err := listFiles(dirPath)
	if err != nil {
		return nil, fmt.Errorf("FromDirectory: failed reading files from the directory `%s`: %w", dirPath, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("FromDirectory: `%s`: %w", dirPath, ErrNoDocuments)
	}
	fileContents := make(map[string]string, len(files))
	var errs []error
	lock := sync.Mutex{}
	wg := sync.WaitGroup{}
	for _, name := range files {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			fileContent, err := FromFilePath(filepath.Join(dirPath, name))
			lock.Lock()
			defer lock.Unlock()
			if err != nil {
				errs = append(errs, err)
			} else {
				fileContents[name] = fileContent
			}
		}(name)
	}
	wg.Wait()
	if len(errs) > 0 {
		slices.SortFunc(errs, func(a, b error) int { return strings.Compare(a.Error(), b.Error()) })
		return nil, fmt.Errorf("FromDirectory: %w", errors.Join(errs...))
	}
	return fileContents, nil
}

// Load reads a corpus from path: a directory of files, or a SQLite database
// when path is a file ending in .db.
func Load(path string) (map[string]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	if !info.IsDir() && strings.EqualFold(filepath.Ext(path), ".db") {
		return FromSQLite(path)
	}
	return FromDirectory(path)
}

// Size is the number of bytes of text in corpus.
func Size(corpus map[string]string) uint64 {
	size := uint64(0)
	for _, content := range corpus {
		size += uint64(len(content))
	}
	return size
}
