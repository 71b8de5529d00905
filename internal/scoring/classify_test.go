package scoring

import "testing"

func TestDistrict(t *testing.T) {
	cases := []struct {
		location string
		want     string
	}{
		{"부산시 해운대구", "해운대구"},
		{"해운대구", "해운대구"},
		{"부산시 수영구 광안동", "수영구"},
		{"부산시", LabelOther},
		{"", LabelOther},
		{"서울특별시 강남구 테헤란로", "강남구"},
	}
	for _, c := range cases {
		if got := District(c.location); got != c.want {
			t.Errorf("District(%q) = %q, want %q", c.location, got, c.want)
		}
	}
}

func TestAgeGroup(t *testing.T) {
	cases := []struct {
		age  *int
		want string
	}{
		{ip(19), LabelOther},
		{ip(20), "20대"},
		{ip(29), "20대"},
		{ip(30), "30대"},
		{ip(40), "40대"},
		{ip(49), "40대"},
		{ip(50), "50대 이상"},
		{ip(73), "50대 이상"},
		{nil, LabelOther},
	}
	for _, c := range cases {
		if got := AgeGroup(c.age); got != c.want {
			t.Errorf("AgeGroup(%v) = %q, want %q", c.age, got, c.want)
		}
	}
}

func TestDemographic(t *testing.T) {
	if got := Demographic(ip(34), "남"); got != "30대 남" {
		t.Errorf("Demographic = %q, want %q", got, "30대 남")
	}
	if got := Demographic(nil, ""); got != LabelOther+" "+LabelOther {
		t.Errorf("fallback demographic = %q", got)
	}
}

func TestHourWindow(t *testing.T) {
	cases := []struct {
		hour *int
		want string
	}{
		{ip(0), "00-03시"},
		{ip(2), "00-03시"},
		{ip(3), "03-06시"},
		{ip(11), "09-12시"},
		{ip(20), "18-21시"},
		{ip(21), "21-24시"},
		{ip(23), "21-24시"},
		{ip(24), "21-24시"},
		{ip(-1), LabelOther},
		{ip(25), LabelOther},
		{nil, LabelOther},
	}
	for _, c := range cases {
		if got := HourWindow(c.hour); got != c.want {
			t.Errorf("HourWindow(%v) = %q, want %q", c.hour, got, c.want)
		}
	}
}

func TestHourWindowOrder(t *testing.T) {
	if HourWindowOrder("00-03시") != 0 {
		t.Errorf("first window should sort first")
	}
	if HourWindowOrder("21-24시") != 7 {
		t.Errorf("tail window should sort at position 7")
	}
	if HourWindowOrder(LabelOther) <= HourWindowOrder("21-24시") {
		t.Errorf("unknown label must sort after every fixed window")
	}
}
