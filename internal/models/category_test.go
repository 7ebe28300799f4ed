package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{in: "Vegan", want: CategoryVegan},
		{in: "vegetarian", want: CategoryVegetarian},
		{in: " NON-VEGETARIAN ", want: CategoryNonVegetarian},
		{in: "Pescatarian", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestCategoryValid(t *testing.T) {
	assert.False(t, Category("vegan").Valid())
	assert.False(t, Category("").Valid())
	assert.Len(t, Categories(), 3)
}
