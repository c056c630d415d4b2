package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPareto_DescendingWithCumShare(t *testing.T) {
	got := Pareto([]ParetoItem{
		{Name: "甲", Count: 10},
		{Name: "乙", Count: 40},
		{Name: "丙", Count: 30},
		{Name: "丁", Count: 20},
	}, 100)

	require.Equal(t, []string{"乙", "丙", "丁", "甲"},
		[]string{got[0].Name, got[1].Name, got[2].Name, got[3].Name})
	require.Equal(t, 40.0, got[0].Share)
	require.Equal(t, 40.0, got[0].CumShare)
	require.Equal(t, 70.0, got[1].CumShare)
	require.Equal(t, 90.0, got[2].CumShare)
	require.Equal(t, 100.0, got[3].CumShare)

	// 累積 ≤80% 的項目加上跨越 80% 線的那一根為重點項目
	require.True(t, got[0].Vital)
	require.True(t, got[1].Vital)
	require.True(t, got[2].Vital) // 跨越 80% 線
	require.False(t, got[3].Vital)
}

func TestPareto_ShareUsesRecordTotal(t *testing.T) {
	// 特徵可共現於同一筆紀錄：10 筆紀錄中特徵件數合計 14，
	// 佔比以紀錄數為分母，累積佔比仍以件數合計為分母
	got := Pareto([]ParetoItem{
		{Name: "a", Count: 8},
		{Name: "b", Count: 6},
	}, 10)

	require.Equal(t, 80.0, got[0].Share)
	require.Equal(t, 60.0, got[1].Share)
	require.Equal(t, 57.1, got[0].CumShare) // 8/14
	require.Equal(t, 100.0, got[1].CumShare)
}

func TestPareto_TiesKeepInputOrder(t *testing.T) {
	got := Pareto([]ParetoItem{
		{Name: "a", Count: 5},
		{Name: "b", Count: 5},
	}, 10)
	require.Equal(t, "a", got[0].Name)
	require.Equal(t, "b", got[1].Name)
}

func TestPareto_ZeroTotal(t *testing.T) {
	got := Pareto([]ParetoItem{{Name: "a"}, {Name: "b"}}, 0)
	for _, it := range got {
		require.Equal(t, 0.0, it.Share)
		require.Equal(t, 0.0, it.CumShare)
		require.False(t, it.Vital)
	}
}
