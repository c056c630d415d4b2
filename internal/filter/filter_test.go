package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"psi-dashboard/internal/models"
)

func sac(n int) *int { return &n }

func fixture() []models.Incident {
	return []models.Incident{
		{ReportNo: "R1", Period: "2024-01", Unit: "10A", Category: "跌倒", SAC: sac(3), Department: "內科"},
		{ReportNo: "R2", Period: "2024-02", Unit: "10B", Category: "藥物", SAC: sac(4), Department: "外科"},
		{ReportNo: "R3", Period: "2024-03", Unit: "10A", Category: "跌倒", SAC: nil, Department: "精神科"},
		{ReportNo: "R4", Period: "2024-04", Unit: "ICU", Category: "醫療", SAC: sac(1), Department: "內科"},
		{ReportNo: "R5", Period: "2024-05", Unit: "10A", Category: "跌倒", SAC: sac(2), Department: "內科"},
	}
}

func ids(in []models.Incident) []string {
	out := make([]string, len(in))
	for i, r := range in {
		out[i] = r.ReportNo
	}
	return out
}

func TestIncidents_PeriodRangeInclusive(t *testing.T) {
	got := Incidents(fixture(), Params{StartPeriod: "2024-02", EndPeriod: "2024-04"})
	require.Equal(t, []string{"R2", "R3", "R4"}, ids(got))
}

func TestIncidents_SentinelsDisableFilter(t *testing.T) {
	got := Incidents(fixture(), Params{Unit: AllUnits, Category: AllCategories})
	require.Len(t, got, 5)
}

func TestIncidents_UnitAndCategory(t *testing.T) {
	got := Incidents(fixture(), Params{Unit: "10A", Category: "跌倒"})
	require.Equal(t, []string{"R1", "R3", "R5"}, ids(got))
}

func TestIncidents_NullSACAlwaysSurvives(t *testing.T) {
	got := Incidents(fixture(), Params{SACs: []int{1, 2}})
	// R3 的 SAC 缺漏，不被嚴重度條件排除
	require.Equal(t, []string{"R3", "R4", "R5"}, ids(got))
}

func TestIncidents_ConjunctiveAndOrderPreserving(t *testing.T) {
	got := Incidents(fixture(), Params{
		StartPeriod: "2024-01", EndPeriod: "2024-05",
		Unit: "10A", Category: "跌倒", SACs: []int{2, 3},
	})
	require.Equal(t, []string{"R1", "R3", "R5"}, ids(got))
}

func TestIncidents_Idempotent(t *testing.T) {
	p := Params{Unit: "10A", SACs: []int{3}}
	once := Incidents(fixture(), p)
	twice := Incidents(once, p)
	require.Equal(t, once, twice)
}

func TestIncidents_DoesNotMutateInput(t *testing.T) {
	in := fixture()
	_ = Incidents(in, Params{Unit: "ICU"})
	require.Equal(t, fixture(), in)
}

func TestByDepartment(t *testing.T) {
	got := ByDepartment(fixture(), "內科")
	require.Equal(t, []string{"R1", "R4", "R5"}, ids(got))

	all := ByDepartment(fixture(), AllDepartments)
	require.Len(t, all, 5)
}

func TestFalls_PeriodOnly(t *testing.T) {
	falls := []models.FallIncident{
		{ReportNo: "F1", Period: "2024-01"},
		{ReportNo: "F2", Period: "2024-03"},
		{ReportNo: "F3", Period: "2024-06"},
	}
	got := Falls(falls, "2024-02", "2024-05")
	require.Len(t, got, 1)
	require.Equal(t, "F2", got[0].ReportNo)
}
