package dto

// PrayerTimes holds the eight daily times of the takvimi in their canonical
// order. Every field is either an "HH:MM" string or empty, never omitted.
type PrayerTimes struct {
	Imsaku         string `json:"imsaku"`
	Sabahu         string `json:"sabahu"`
	LindjaEDiellit string `json:"lindja_e_diellit"`
	Dreka          string `json:"dreka"`
	Ikindia        string `json:"ikindia"`
	Akshami        string `json:"akshami"`
	Jacia          string `json:"jacia"`
	GjatesiaEDites string `json:"gjatesia_e_dites"`
}

// DayRecord is one extracted calendar day.
type DayRecord struct {
	Day      int         `json:"data_sipas_kal_boteror"`
	Weekday  string      `json:"dita_javes"`
	Festival string      `json:"festat_fetare_dhe_shenime_te_tjera_astronomike"`
	Times    PrayerTimes `json:"kohet"`
}

// MonthBucket maps zero-padded day codes ("01".."31") to day records.
type MonthBucket map[string]DayRecord

// Year maps two-digit month codes ("01".."12") to month buckets.
// A Year produced by extraction always carries all 12 keys.
type Year map[string]MonthBucket

// MonthCodes lists the twelve month keys in calendar order.
var MonthCodes = []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}

// NewYear allocates a Year with all 12 month buckets present and empty.
func NewYear() Year {
	y := make(Year, 12)
	for _, m := range MonthCodes {
		y[m] = MonthBucket{}
	}
	return y
}

// DayCount returns the number of records across all months.
func (y Year) DayCount() int {
	n := 0
	for _, bucket := range y {
		n += len(bucket)
	}
	return n
}
