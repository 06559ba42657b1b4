package schema

// filterCompat is the closed compatibility table between column types and
// filter predicates, mirroring the remote API's per-type filter grammar.
// Both the validation engine and the query engine consult it, so an
// incompatible pair is rejected identically offline and at query time.
var filterCompat = map[ColumnType]map[FilterType]bool{
	TypeTitle:       textFilters(),
	TypeRichText:    textFilters(),
	TypeURL:         textFilters(),
	TypeEmail:       textFilters(),
	TypePhoneNumber: textFilters(),
	TypeSelect: set(
		FilterEquals, FilterDoesNotEqual, FilterContains,
		FilterIsEmpty, FilterIsNotEmpty,
	),
	TypeMultiSelect: set(
		FilterContains, FilterDoesNotContain,
		FilterIsEmpty, FilterIsNotEmpty,
	),
	TypeCheckbox: set(FilterEquals, FilterDoesNotEqual),
	TypeNumber: set(
		FilterEquals, FilterDoesNotEqual,
		FilterGreaterThan, FilterLessThan,
		FilterGreaterThanOrEqual, FilterLessThanOrEqual,
		FilterIsEmpty, FilterIsNotEmpty,
	),
	TypeDate: set(
		FilterEquals, FilterDoesNotEqual,
		FilterOnOrAfter, FilterOnOrBefore,
		FilterPastWeek, FilterPastMonth, FilterPastYear,
		FilterNextWeek, FilterNextMonth, FilterNextYear,
		FilterIsEmpty, FilterIsNotEmpty,
	),
	TypePeople: set(FilterContains, FilterDoesNotContain, FilterIsEmpty, FilterIsNotEmpty),
	TypeFiles:  set(FilterIsEmpty, FilterIsNotEmpty),
}

func textFilters() map[FilterType]bool {
	return set(
		FilterEquals, FilterDoesNotEqual,
		FilterContains, FilterDoesNotContain,
		FilterStartsWith, FilterEndsWith,
		FilterIsEmpty, FilterIsNotEmpty,
	)
}

func set(fs ...FilterType) map[FilterType]bool {
	m := make(map[FilterType]bool, len(fs))
	for _, f := range fs {
		m[f] = true
	}
	return m
}

// Compatible reports whether the filter predicate is legal for the column
// type. Note select columns use "contains" for substring-style matching in
// search even though their exact-match predicate is "equals".
func Compatible(col ColumnType, filter FilterType) bool {
	return filterCompat[col][filter]
}
