package matcher

// ambiguousUppercase is the deny-list of uppercase tokens that are common
// English words, finance slang or titles far more often than ticker
// mentions. A dictionary hit on one of these still produces a candidate,
// but at ambiguous confidence so the resolver prefers any competing
// reading. Length-2-and-under tokens are ambiguous regardless of this
// list.
var ambiguousUppercase = map[string]struct{}{
	"ALL": {}, "AND": {}, "ANY": {}, "ARE": {}, "BIG": {}, "BUY": {},
	"CAN": {}, "CEO": {}, "CFO": {}, "CTO": {}, "DID": {}, "EPS": {},
	"ETF": {}, "FOR": {}, "FREE": {}, "GDP": {}, "GOOD": {}, "HAS": {},
	"HOLD": {}, "HUGE": {}, "IMO": {}, "IPO": {}, "ITS": {}, "LOW": {},
	"MOON": {}, "NEW": {}, "NEXT": {}, "NOT": {}, "NOW": {}, "ONE": {},
	"OUT": {}, "OVER": {}, "SEC": {}, "SELL": {}, "SOON": {}, "THE": {},
	"USA": {}, "WAS": {}, "YOLO": {}, "YOU": {},
}

// IsAmbiguous reports whether an uppercase token should be scored at
// reduced confidence even when it is a real dictionary symbol.
func IsAmbiguous(token string) bool {
	if len(token) <= 2 {
		return true
	}
	_, ok := ambiguousUppercase[token]
	return ok
}
