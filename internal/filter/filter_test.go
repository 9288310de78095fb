package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yuepai/internal/region"
)

var (
	testRegions = []region.Region{
		{Code: 110000, Name: "北京市"},
		{Code: 110105, Name: "朝阳区"},
		{Code: 330000, Name: "浙江省"},
		{Code: 330100, Name: "杭州市"},
		{Code: 330106, Name: "西湖区"},
	}
	testProvinces = region.Provinces(testRegions)
)

func TestBuildDisplayRegions(t *testing.T) {
	all := region.All()
	tests := []struct {
		name   string
		filter Filter
		want   []region.Region
	}{
		{
			name:   "unset",
			filter: Filter{},
			want:   []region.Region{all, testRegions[0], testRegions[2]},
		},
		{
			name:   "province_selected",
			filter: Filter{RegionCode: 330000},
			want:   []region.Region{all, testRegions[0], testRegions[2]},
		},
		{
			name:   "sub_region_selected",
			filter: Filter{RegionCode: 330106},
			want:   []region.Region{all, testRegions[0], testRegions[2], {Code: 330106, Name: "西湖区"}},
		},
		{
			name:   "unknown_code",
			filter: Filter{RegionCode: 990101},
			want:   []region.Region{all, testRegions[0], testRegions[2]},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildDisplayRegions(testProvinces, testRegions, tt.filter))
		})
	}
}

func TestBuildDisplayRegionsDoesNotAliasProvinces(t *testing.T) {
	provinces := make([]region.Region, len(testProvinces), len(testProvinces)+4)
	copy(provinces, testProvinces)

	got := BuildDisplayRegions(provinces, testRegions, Filter{RegionCode: 330106})
	got[1].Name = "changed"
	assert.Equal(t, "北京市", provinces[0].Name)
}

func TestBuildOptionList(t *testing.T) {
	options := []string{"互免", "需要收费"}
	got := BuildOptionList(options)

	assert.Equal(t, []string{"全部", "互免", "需要收费"}, got)
	assert.Equal(t, []string{"互免", "需要收费"}, options)
	assert.Equal(t, []string{"全部"}, BuildOptionList(nil))
}

type recordingDispatcher struct {
	store   *Store
	actions []Action
}

func (d *recordingDispatcher) Dispatch(a Action) Filter {
	d.actions = append(d.actions, a)
	return d.store.Dispatch(a)
}

func TestSelector(t *testing.T) {
	d := &recordingDispatcher{store: NewStore(Filter{})}
	s := NewSelector(d)

	s.SelectRegion(330106)
	s.SelectCostOption("需要收费")
	s.SelectIdentity("摄影师")
	got := s.SelectGender("女")

	assert.Len(t, d.actions, 4)
	for _, a := range d.actions {
		assert.Equal(t, ActionSetFilter, a.Type)
	}
	assert.Equal(t, Filter{RegionCode: 330106, CostOption: "需要收费", Identity: "摄影师", Gender: "女"}, got)

	got = s.SelectCostOption(AllLabel)
	assert.Equal(t, "", got.CostOption)
	assert.Equal(t, "摄影师", got.Identity)
}

func TestSelectorExtraIsNoop(t *testing.T) {
	d := &recordingDispatcher{store: NewStore(Filter{Gender: "男"})}
	s := NewSelector(d)

	assert.NotPanics(t, s.Extra)
	assert.Empty(t, d.actions)
	assert.Equal(t, Filter{Gender: "男"}, d.store.Filter())
}

func TestStoreDispatch(t *testing.T) {
	s := NewStore(Filter{})

	code := region.Code(330000)
	s.Dispatch(SetFilter(Partial{RegionCode: &code}))
	identity := "模特"
	got := s.Dispatch(SetFilter(Partial{Identity: &identity}))
	assert.Equal(t, Filter{RegionCode: 330000, Identity: "模特"}, got)

	got = s.Dispatch(Action{Type: "UNKNOWN"})
	assert.Equal(t, Filter{RegionCode: 330000, Identity: "模特"}, got)

	got = s.Dispatch(ResetFilter())
	assert.True(t, got.IsZero())
}

func TestRegionRange(t *testing.T) {
	_, _, ok := Filter{}.RegionRange()
	assert.False(t, ok)

	from, to, ok := Filter{RegionCode: 330000}.RegionRange()
	assert.True(t, ok)
	assert.Equal(t, region.Code(330000), from)
	assert.Equal(t, region.Code(340000), to)

	from, to, ok = Filter{RegionCode: 330106}.RegionRange()
	assert.True(t, ok)
	assert.Equal(t, region.Code(330106), from)
	assert.Equal(t, region.Code(330107), to)
}

func TestSessionRoundTrip(t *testing.T) {
	values := map[interface{}]interface{}{}
	set := func(k interface{}, v interface{}) { values[k] = v }
	get := func(k interface{}) interface{} { return values[k] }

	assert.True(t, Load(get).IsZero())

	want := Filter{RegionCode: 330106, CostOption: "互免", Identity: "模特", Gender: "女"}
	want.Save(set)
	assert.Equal(t, want, Load(get))
}

func TestProject(t *testing.T) {
	v := Project(Catalogs{
		Regions:     testRegions,
		Provinces:   testProvinces,
		CostOptions: []string{"互免"},
		Identities:  []string{"模特"},
		Genders:     []string{"男", "女"},
	}, Filter{RegionCode: 110105})

	assert.Len(t, v.DisplayRegions, 4)
	assert.Equal(t, []string{"全部", "互免"}, v.CostOptions)
	assert.Equal(t, []string{"全部", "模特"}, v.Identities)
	assert.Equal(t, []string{"全部", "男", "女"}, v.Genders)
	assert.Equal(t, region.Code(110105), v.Filter.RegionCode)
}
