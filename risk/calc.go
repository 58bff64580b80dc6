package risk

// lossPct is a loss as a positive fraction of notional; gains count as zero.
func lossPct(pl, notional float64) float64 {
	if notional <= 0 || pl >= 0 {
		return 0
	}
	return -pl / notional
}

func loss(pl float64) float64 {
	if pl >= 0 {
		return 0
	}
	return -pl
}
