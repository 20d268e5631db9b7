package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutAnnotationsStacksFromBottom(t *testing.T) {
	list := []Annotation{{ID: 1, Content: "A"}, {ID: 2, Content: "B"}}
	boxes := LayoutAnnotations(list, 600)
	require.Len(t, boxes, 2)

	assert.Equal(t, Rect{X: 10, Y: 530, Width: 100, Height: 30}, boxes[0].Rect)
	assert.Equal(t, Rect{X: 10, Y: 560, Width: 100, Height: 30}, boxes[1].Rect)
	assert.Equal(t, Point{X: 15, Y: 550}, boxes[0].Text)
	assert.Equal(t, Point{X: 15, Y: 580}, boxes[1].Text)
	assert.Equal(t, "A", boxes[0].Content)
	assert.Equal(t, "B", boxes[1].Content)
}

func TestLayoutAnnotationsEmpty(t *testing.T) {
	assert.Nil(t, LayoutAnnotations(nil, 600))
}
