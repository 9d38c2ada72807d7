package app

// clamp clamps v into [min, max].
func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// compute dynamic widths for the modules table based on available total width
func moduleColWidths(total int) (wName, wTickets, wTime, wSLA, wBar, wStatus, wTrend int) {
	// fixed minimums (numbers and labels)
	minName, minTickets, minTime, minSLA, minStatus, minTrend := 24, 8, 14, 8, 11, 12

	base := minName + minTickets + minTime + minSLA + minStatus + minTrend
	remain := total - base
	if remain < 6 {
		remain = 6
	}

	// bar gets the flexible space first, favor module name with any remainder
	wBar = clamp(remain, 6, 30)
	extra := remain - wBar

	wName = clamp(minName+extra, 16, 40)
	wTickets = minTickets
	wTime = minTime
	wSLA = minSLA
	wStatus = minStatus
	wTrend = minTrend
	return
}

// width of the label column in the charts view
func chartLabelWidth(total int) int {
	return clamp(total/4, 12, 26)
}
