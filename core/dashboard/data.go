package dashboard

// Data is the input contract of the dashboard: one label sequence per chart
// and one value sequence per dataset. Keys keep the names the page globals
// had, so snapshots produced for the old page can be fed unchanged.
type Data struct {
	TodayTime        []string  `json:"today_log_time" yaml:"today_log_time"`
	TodaySolarPower  []float64 `json:"today_log_solar_power" yaml:"today_log_solar_power"`
	TodayConsumption []float64 `json:"today_log_consumption" yaml:"today_log_consumption"`

	ElecTime      []string  `json:"daily_log_elec_time" yaml:"daily_log_elec_time"`
	ElecConsumed  []float64 `json:"daily_log_elec_consumed" yaml:"daily_log_elec_consumed"`
	ElecReturned  []float64 `json:"daily_log_elec_returned" yaml:"daily_log_elec_returned"`
	ElecGenerated []float64 `json:"daily_log_elec_generated" yaml:"daily_log_elec_generated"`

	GasTime []string  `json:"daily_log_gas_time" yaml:"daily_log_gas_time"`
	GasUsed []float64 `json:"daily_log_gas_used" yaml:"daily_log_gas_used"`

	CostTime      []string  `json:"daily_log_cost_time" yaml:"daily_log_cost_time"`
	CostProsument []float64 `json:"daily_log_cost_prosument" yaml:"daily_log_cost_prosument"`
	CostSmart     []float64 `json:"daily_log_cost_smart" yaml:"daily_log_cost_smart"`
}
