package certificate

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout_BuildTemplate(t *testing.T) {
	t.Parallel()

	issued := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	tpl := DefaultLayout().BuildTemplate("alice", 85, issued)

	texts := make([]string, 0, len(tpl.Lines))
	for _, l := range tpl.Lines {
		texts = append(texts, l.Text)
	}

	assert.Equal(t, []string{
		"Certificate of Completion",
		"This certifies that",
		"alice",
		"has successfully completed the",
		"STEM Flowlab Certification Quiz",
		"with a score of 85%",
		"Authorized by MyFlowLab and UTP",
		"Date: March 05, 2024",
	}, texts)
	assert.Empty(t, tpl.Images)

	again := DefaultLayout().BuildTemplate("alice", 85, issued)
	assert.Equal(t, tpl, again)
}

func TestLayout_Logos(t *testing.T) {
	t.Parallel()

	l := DefaultLayout()
	l.LeftLogo = "left.png"
	l.RightLogo = "right.png"

	tpl := l.BuildTemplate("bob", 70, time.Now())
	require.Len(t, tpl.Images, 2)
	assert.Equal(t, 20.0, tpl.Images[0].X)
	assert.Equal(t, 150.0, tpl.Images[1].X)
}

func TestPDFRenderer_SkipsMissingLogos(t *testing.T) {
	t.Parallel()

	l := DefaultLayout()
	l.LeftLogo = "does-not-exist.png"

	doc, err := NewPDFRenderer().RenderTextDocument(l.BuildTemplate("alice", 90, time.Now()))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
}

func TestRenderSeal(t *testing.T) {
	t.Parallel()

	data, err := RenderSeal(75)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, sealSize, img.Bounds().Dx())
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	g := NewGenerator(DefaultLayout(), NewPDFRenderer(), true)
	doc, err := g.Generate("alice", 100)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
	assert.Equal(t, "alice_certificate.pdf", FileName("alice"))
}
