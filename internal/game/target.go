package game

import "math/rand"

// targets is the fragment pool, mixing common digraphs, rare pairs, and
// longer clusters so difficulty varies turn to turn.
var targets = []string{
	// common two-letter
	"BL", "ST", "ER", "TH", "CH", "SH", "WH", "LY", "ED", "UN", "RE",
	// harder two-letter
	"QU", "PH", "GH", "CK", "DG", "NK", "MP", "NT", "ND", "NG",
	"RD", "LD", "LT", "PT", "CT",
	// rare two-letter
	"ZE", "ZI", "ZA", "ZO", "YN", "YM", "YP", "YT", "XY", "WR", "PS", "PN",
	// three-letter
	"ING", "ION", "NDE", "TLE", "BLE", "PLE", "CLE", "GLE",
	"TCH", "DGE", "GHT", "OUG",
	"ESS", "ENT", "ANT", "NCE", "ATE", "IVE", "URE",
	"ARD", "ORD", "IRD", "AST", "EST", "IST",
	// four-letter
	"TION", "SION", "NESS", "MENT", "ABLE", "IBLE",
	"WARD", "SHIP", "HOOD", "OUGH", "IGHT",
}

// NextTarget draws a random fragment for the next turn or round.
func NextTarget() string {
	return targets[rand.Intn(len(targets))]
}
