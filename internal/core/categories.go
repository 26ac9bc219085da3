package core

// SuggestedCategories lists the category suggestions offered per type.
// This is presentation-facing configuration, not a store invariant:
// categories remain free-form strings.
var SuggestedCategories = map[TransactionType][]string{
	Income:  {"Salary", "Freelance", "Investment", "Business", "Other"},
	Expense: {"Food", "Transportation", "Housing", "Utilities", "Entertainment", "Shopping", "Health", "Other"},
}
