package uber

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const discoverDocument = `{"uber":{"version":"1.0","data":[
	{"rel":["self"],"url":"/people"},
	{"data":[
		{"rel":["self","item"],"url":"/people/1"},
		{"name":"name","value":"Bilbo"}
	]},
	{"data":[
		{"rel":["item"],"url":"/people/2"}
	]}
]}}`

func TestFindLinksWithRel(t *testing.T) {
	urls, err := Discoverer{}.FindLinksWithRel("item", strings.NewReader(discoverDocument))
	require.NoError(t, err)
	assert.Equal(t, []string{"/people/1", "/people/2"}, urls)
}

func TestFindLinkWithRel(t *testing.T) {
	var d Discoverer

	url, ok, err := d.FindLinkWithRel("self", strings.NewReader(discoverDocument))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/people", url)

	_, ok, err = d.FindLinkWithRel("next", strings.NewReader(discoverDocument))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindLinksWithRelInvalidDocument(t *testing.T) {
	_, err := Discoverer{}.FindLinksWithRel("self", strings.NewReader(`{"data":[]}`))
	assert.Error(t, err)

	_, err = Discoverer{}.FindLinksWithRel("self", strings.NewReader(`not json`))
	assert.Error(t, err)
}
