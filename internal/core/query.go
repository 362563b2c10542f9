package core

// Pure filters and sums over payment lists. An empty profileID means no
// profile restriction.

// ByProfile returns the payments belonging to the given profile.
func ByProfile(payments []Payment, profileID string) []Payment {
	out := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if p.ProfileID == profileID {
			out = append(out, p)
		}
	}
	return out
}

// ByCategory returns the payments in the given category, optionally
// restricted to one profile.
func ByCategory(payments []Payment, category Category, profileID string) []Payment {
	out := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if p.Category != category {
			continue
		}
		if profileID != "" && p.ProfileID != profileID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ByStatus returns the payments with the given paid status, optionally
// restricted to one profile.
func ByStatus(payments []Payment, isPaid bool, profileID string) []Payment {
	out := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if p.IsPaid != isPaid {
			continue
		}
		if profileID != "" && p.ProfileID != profileID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ByMonth returns the payments dated in the same calendar month and year as
// ref, optionally restricted to one profile.
func ByMonth(payments []Payment, ref Date, profileID string) []Payment {
	out := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if !p.Date.SameMonth(ref) {
			continue
		}
		if profileID != "" && p.ProfileID != profileID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// TotalPaid sums the amounts of all paid payments.
func TotalPaid(payments []Payment) float64 {
	var sum float64
	for _, p := range payments {
		if p.IsPaid {
			sum += p.Amount
		}
	}
	return sum
}

// TotalDue sums the amounts of all unpaid payments.
func TotalDue(payments []Payment) float64 {
	var sum float64
	for _, p := range payments {
		if !p.IsPaid {
			sum += p.Amount
		}
	}
	return sum
}
