package profile

import (
	"regexp"

	"github.com/ena-dev/ena/internal/model"
)

// paymentNote matches the bill-payment wording the builtin institutions
// print on credit-card statements.
var paymentNote = regexp.MustCompile(`(?i)\bPAYMENT\b.*\bTHANK\s?YOU\b|\bPAIEMENT\b`)

// signIncome classifies by the sign of the stored amount: credits (payments,
// refunds, cashback) end up positive under the internal convention, negative
// under expenses-positive.
func signIncome(t model.Transaction, conv model.SignConvention) bool {
	amt := t.Amount
	if conv == model.ExpensesPositive {
		amt = amt.Neg()
	}
	return amt.IsPositive()
}

// builtins returns the institutions with known statement formats. Date
// tokens, credit markers and balance wording differ per institution; the
// named groups (dates, description, amount, cr, year, balance) do not.
//
// RBC, MFC and AMEX patterns were written against documentation only, with
// no statement samples to derive an income rule from, so they carry no
// classifier.
func builtins() []*Profile {
	return []*Profile{
		{
			Name:       "BMO",
			Txn:        regexp.MustCompile(`(?m)^(?P<dates>(?:\w{3}\.? \d{1,2}\s*){2})(?P<description>.+)\s(?P<amount>-?[\d,]+\.\d{2})(?P<cr>-|\s*CR)?`),
			Year:       regexp.MustCompile(`(?i)Statement period\s\w+\.?\s\d+,\s(?P<year>\d{4})`),
			OpeningBal: regexp.MustCompile(`Previous balance.*(?P<balance>-?\$[\d,]+\.\d{2})(?P<cr>-|\s?CR)?`),
			ClosingBal: regexp.MustCompile(`Total balance\s.*(?P<balance>-?\$[\d,]+\.\d{2})(?P<cr>-|\s?CR)?`),
			// BMO descriptions never carry dollar signs; leave the
			// embedded-amount override off.
			AmountInDescription: false,
			Payment:             paymentNote,
			income:              signIncome,
		},
		{
			Name:                "RBC",
			Txn:                 regexp.MustCompile(`(?m)^(?P<dates>(?:\w{3} \d{2} ){2})(?P<description>.+)\s(?P<amount>-?\$[\d,]+\.\d{2}-?)(?P<cr>-|\s?CR)?`),
			Year:                regexp.MustCompile(`(?i)STATEMENT FROM .+(?P<year>-?,.\d{4})`),
			OpeningBal:          regexp.MustCompile(`(PREVIOUS|Previous) (STATEMENT|ACCOUNT|Account) (BALANCE|Balance) (?P<balance>-?\$[\d,]+\.\d{2})(?P<cr>-|\s?CR)?`),
			ClosingBal:          regexp.MustCompile(`(?:NEW|CREDIT) BALANCE (?P<balance>-?\$[\d,]+\.\d{2})(?P<cr>-|\s?CR)?`),
			AmountInDescription: true,
			Payment:             paymentNote,
		},
		{
			Name:                "MFC",
			Txn:                 regexp.MustCompile(`(?m)^(?P<dates>(?:\d{2}/\d{2} ){2})(?P<description>.+)\s(?P<amount>-?\$[\d,]+\.\d{2})(?P<cr>-|\s?CR)?`),
			Year:                regexp.MustCompile(`(?i)Statement Period: .+(?P<year>-?,.\d{4})`),
			OpeningBal:          regexp.MustCompile(`(PREVIOUS|Previous) (BALANCE|Balance) (?P<balance>-?\$[\d,]+\.\d{2})(?P<cr>-|\s?CR)?`),
			ClosingBal:          regexp.MustCompile(`New Balance (?P<balance>-?\$[\d,]+\.\d{2})(?P<cr>-|\s?CR)?`),
			AmountInDescription: true,
			Payment:             paymentNote,
		},
		{
			Name:                "TD",
			Txn:                 regexp.MustCompile(`(?P<dates>(?:\w{3} \d{1,2} ){2})(?P<description>.+)\s(?P<amount>-?\$[\d,]+\.\d{2}-?)(?P<cr>-|\s?CR)?`),
			Year:                regexp.MustCompile(`(?i)Statement Period: .+(?P<year>-?,.\d{4})`),
			OpeningBal:          regexp.MustCompile(`(PREVIOUS|Previous) (STATEMENT|ACCOUNT|Account) (BALANCE|Balance) (?P<balance>-?\$[\d,]+\.\d{2})(?P<cr>-|\s?CR)?`),
			ClosingBal:          regexp.MustCompile(`(?:NEW|CREDIT) BALANCE (?P<balance>-?\s?\$[\d,]+\.\d{2})(?P<cr>-|\s?CR)?`),
			AmountInDescription: true,
			Payment:             paymentNote,
			income:              signIncome,
		},
		{
			Name:                "AMEX",
			Txn:                 regexp.MustCompile(`(?P<dates>(?:\w{3} \d{1,2} ){2})(?P<description>.+)\s(?P<amount>-?[\d,]+\.\d{2}-?)(?P<cr>-|\s?CR)?`),
			Year:                regexp.MustCompile(`(?i)(?P<year>-?,.\d{4})`),
			OpeningBal:          regexp.MustCompile(`(PREVIOUS|Previous) (BALANCE|Balance) (?P<balance>-?\$[\d,]+\.\d{2})(?P<cr>-|\s?CR)?`),
			ClosingBal:          regexp.MustCompile(`(?:New|CREDIT) Balance (?P<balance>-?\s?\$[\d,]+\.\d{2})(?P<cr>-|\s?CR)?`),
			AmountInDescription: true,
			Payment:             paymentNote,
		},
	}
}
