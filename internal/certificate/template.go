// Package certificate lays out and renders completion certificates.
package certificate

import (
	"fmt"
	"time"
)

// Line is one centered text line of the document.
type Line struct {
	Text        string
	Size        float64
	Bold        bool
	SpaceBefore float64 // vertical gap in mm before the line
}

// Image is an image placed at absolute coordinates in mm.
// Either Path or Data is set; images whose file does not exist are skipped.
type Image struct {
	Name string
	Path string
	Data []byte
	X, Y float64
	W    float64
}

// Template is the input of the document rendering collaborator.
type Template struct {
	Title  string
	Lines  []Line
	Images []Image
}

// Layout holds the fixed parts of the certificate.
type Layout struct {
	Program   string
	Authority string
	LeftLogo  string
	RightLogo string
}

// DefaultLayout matches the STEM Flowlab certificate.
func DefaultLayout() Layout {
	return Layout{
		Program:   "STEM Flowlab Certification Quiz",
		Authority: "Authorized by MyFlowLab and UTP",
	}
}

// BuildTemplate returns the certificate for a recipient. The only time-dependent part is issuedAt.
func (l Layout) BuildTemplate(username string, score int, issuedAt time.Time) Template {
	t := Template{
		Title: "Certificate of Completion",
		Lines: []Line{
			{Text: "Certificate of Completion", Size: 20, Bold: true, SpaceBefore: 50},
			{Text: "This certifies that", Size: 14, SpaceBefore: 10},
			{Text: username, Size: 16, Bold: true},
			{Text: "has successfully completed the", Size: 14},
			{Text: l.Program, Size: 14},
			{Text: fmt.Sprintf("with a score of %d%%", score), Size: 14},
			{Text: l.Authority, Size: 14, SpaceBefore: 20},
			{Text: "Date: " + issuedAt.Format("January 02, 2006"), Size: 14, SpaceBefore: 10},
		},
	}

	if l.LeftLogo != "" {
		t.Images = append(t.Images, Image{Name: "left_logo", Path: l.LeftLogo, X: 20, Y: 10, W: 40})
	}
	if l.RightLogo != "" {
		t.Images = append(t.Images, Image{Name: "right_logo", Path: l.RightLogo, X: 150, Y: 10, W: 40})
	}

	return t
}

// FileName is the download name of a user's certificate.
func FileName(username string) string {
	return username + "_certificate.pdf"
}
