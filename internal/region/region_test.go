package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog() []Region {
	return []Region{
		{Code: 110000, Name: "北京市"},
		{Code: 110105, Name: "朝阳区"},
		{Code: 330000, Name: "浙江省"},
		{Code: 330100, Name: "杭州市"},
		{Code: 330106, Name: "西湖区"},
		{Code: 330200, Name: "宁波市"},
		{Code: 440000, Name: "广东省"},
		{Code: 440300, Name: "深圳市"},
	}
}

func TestIsProvince(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want bool
	}{
		{name: "province", code: 330000, want: true},
		{name: "city", code: 330100, want: false},
		{name: "district", code: 330106, want: false},
		{name: "zero", code: 0, want: false},
		{name: "short_code", code: 3301, want: false},
		{name: "bare_suffix", code: 10000, want: true},
		{name: "seven_digits", code: 1230000, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsProvince(tt.code))
		})
	}
}

func TestProvinceOf(t *testing.T) {
	tests := []struct {
		code Code
		want Code
	}{
		{code: 330106, want: 330000},
		{code: 330000, want: 330000},
		{code: 110105, want: 110000},
		{code: 0, want: 0},
		{code: 3301, want: 0},
	}
	for _, tt := range tests {
		got := ProvinceOf(tt.code)
		assert.Equal(t, tt.want, got, "ProvinceOf(%d)", tt.code)
		assert.Equal(t, got, ProvinceOf(got), "ProvinceOf must be idempotent for %d", tt.code)
	}
}

func TestSubRegionsOf(t *testing.T) {
	all := testCatalog()

	got := SubRegionsOf(all, ProvinceOf(330106))
	assert.Equal(t, []Region{
		{Code: 330000, Name: "浙江省"},
		{Code: 330100, Name: "杭州市"},
		{Code: 330106, Name: "西湖区"},
		{Code: 330200, Name: "宁波市"},
	}, got)

	for _, r := range got {
		assert.True(t, SameProvince(r.Code, 330106))
	}
	for _, r := range all {
		if SameProvince(r.Code, 330106) {
			assert.Contains(t, got, r)
		}
	}
}

func TestSubRegionsOfUnsetProvince(t *testing.T) {
	assert.Empty(t, SubRegionsOf(testCatalog(), 0))
}

func TestSubRegionsOfShortCodes(t *testing.T) {
	all := append(testCatalog(), Region{Code: 3301, Name: "残缺编码"})

	got := SubRegionsOf(all, 330000)
	assert.NotContains(t, got, Region{Code: 3301, Name: "残缺编码"})
	assert.Len(t, got, 4)
}

func TestProvinces(t *testing.T) {
	assert.Equal(t, []Region{
		{Code: 110000, Name: "北京市"},
		{Code: 330000, Name: "浙江省"},
		{Code: 440000, Name: "广东省"},
	}, Provinces(testCatalog()))
}

func TestLookup(t *testing.T) {
	r, ok := Lookup(testCatalog(), 330106)
	assert.True(t, ok)
	assert.Equal(t, "西湖区", r.Name)

	_, ok = Lookup(testCatalog(), 999999)
	assert.False(t, ok)
	assert.Equal(t, "", NameOf(testCatalog(), 999999))
}
