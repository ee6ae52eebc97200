package verifier

import "math/big"

type fieldType int

const (
	identifierField fieldType = iota
	userAddressField
	contractAddressField
	tokenField
	amountField
	percentField
	weightField
	timestampField
	chainsField
	textField
)

type rule struct {
	name     string
	field    fieldType
	required bool
	// zero amounts are expected, e.g. slippage minimums
	zeroOK bool
	// percent fields: value representing 100%
	scale *big.Int
	// message for a percent at 100%
	disabledMsg string
}

var (
	BASIS_POINTS      = big.NewInt(10_000)
	PARTS_PER_BILLION = big.NewInt(1_000_000_000)
)

func projectID() rule { return rule{name: "projectId", field: identifierField, required: true} }

func chainIDs(required bool) rule {
	return rule{name: "chainIds", field: chainsField, required: required}
}

func mustStartAt(name string) rule { return rule{name: name, field: timestampField} }

func reservedPercent() rule {
	return rule{name: "reservedPercent", field: percentField, scale: BASIS_POINTS, disabledMsg: "all issued tokens are reserved, payers receive nothing"}
}

func cashOutTaxRate() rule {
	return rule{name: "cashOutTaxRate", field: percentField, scale: BASIS_POINTS, disabledMsg: "100% cash out tax rate disables cash outs"}
}

func cutPercent(name string) rule {
	return rule{name: name, field: percentField, scale: PARTS_PER_BILLION, disabledMsg: "100% cut stops issuance after the first cycle"}
}

var operationRules = map[Kind][]rule{
	Pay: {
		projectID(),
		{name: "terminal", field: contractAddressField},
		{name: "token", field: tokenField, required: true},
		{name: "amount", field: amountField, required: true},
		{name: "beneficiary", field: userAddressField, required: true},
		{name: "minReturnedTokens", field: amountField, zeroOK: true},
	},
	CashOut: {
		{name: "holder", field: userAddressField, required: true},
		projectID(),
		{name: "terminal", field: contractAddressField},
		{name: "cashOutCount", field: amountField, required: true},
		{name: "tokenToReclaim", field: tokenField, required: true},
		{name: "minTokensReclaimed", field: amountField, zeroOK: true},
		{name: "beneficiary", field: userAddressField, required: true},
	},
	SendPayouts: {
		projectID(),
		{name: "terminal", field: contractAddressField},
		{name: "token", field: tokenField, required: true},
		{name: "amount", field: amountField, required: true},
		{name: "currency", field: identifierField, required: true},
		{name: "minTokensPaidOut", field: amountField, zeroOK: true},
		chainIDs(false),
	},
	QueueRules: {
		projectID(),
		{name: "controller", field: contractAddressField},
		mustStartAt("mustStartAtOrAfter"),
		{name: "weight", field: weightField, required: true},
		cutPercent("weightCutPercent"),
		reservedPercent(),
		cashOutTaxRate(),
		chainIDs(false),
	},
	LaunchProject: {
		{name: "owner", field: userAddressField, required: true},
		{name: "projectUri", field: textField},
		{name: "controller", field: contractAddressField},
		{name: "terminal", field: contractAddressField},
		mustStartAt("mustStartAtOrAfter"),
		{name: "weight", field: weightField, required: true},
		cutPercent("weightCutPercent"),
		reservedPercent(),
		cashOutTaxRate(),
		chainIDs(true),
	},
	DeployToken: {
		projectID(),
		{name: "name", field: textField, required: true},
		{name: "symbol", field: textField, required: true},
		chainIDs(false),
	},
	DeployRevnet: {
		{name: "name", field: textField, required: true},
		{name: "symbol", field: textField, required: true},
		{name: "splitOperator", field: userAddressField, required: true},
		mustStartAt("startsAtOrAfter"),
		{name: "initialIssuance", field: weightField, required: true},
		cutPercent("issuanceCutPercent"),
		{name: "splitPercent", field: percentField, scale: BASIS_POINTS, disabledMsg: "all issuance goes to splits"},
		cashOutTaxRate(),
		chainIDs(true),
	},
	DeploySuckers: {
		projectID(),
		chainIDs(true),
	},
}
