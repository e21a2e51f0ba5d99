package intake

import (
	"fmt"
	"os"

	"github.com/oddlzenie/intake/pkg/slug"
)

// Document is one generated PDF, held in memory for attachment.
type Document struct {
	Filename string
	Content  []byte
}

// DocumentSet is the outcome of one render invocation. It owns the working
// directory the documents came from; Close releases it. The set may hold
// fewer than the four expected documents when the generator skipped some.
type DocumentSet struct {
	Documents []Document

	dir string
}

// Close removes the working directory backing the set. Safe to call on a
// set without one.
func (s *DocumentSet) Close() error {
	if s.dir == "" {
		return nil
	}
	return os.RemoveAll(s.dir)
}

// documentPrefixes lists the four documents every render produces, in the
// order they are attached to the operator notification.
var documentPrefixes = []string{
	"Zivotopis",       // résumé / CV
	"Majetok",         // asset declaration
	"Majetok_Historia", // asset history
	"Veritelia",       // creditor list
}

// documentFilenames derives the expected output names for a submission.
// Name parts are folded to ASCII ("Nováková" → "Novakova") so the files
// attach and download cleanly everywhere. The generator script must fold
// the same way; a script writing raw diacritic names produces files the
// read-back never finds, which the renderer reports as zero documents.
func documentFilenames(sub FormSubmission) []string {
	first := asciiNamePart(sub.FirstName(), "Dlznik")
	last := asciiNamePart(sub.LastName(), "Neznamy")

	names := make([]string, 0, len(documentPrefixes))
	for _, prefix := range documentPrefixes {
		names = append(names, fmt.Sprintf("%s_%s_%s.pdf", prefix, first, last))
	}
	return names
}

func asciiNamePart(name, fallback string) string {
	part := slug.Make(name, slug.Separator("_"), slug.Lowercase(false))
	if part == "" {
		return fallback
	}
	return part
}
