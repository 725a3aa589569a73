package service

import (
	"fmt"
	"math"
	"net"
	"regexp"
	"strings"
)

var suspiciousKeywords = []string{
	"phishing", "scam", "login", "sign-in", "signin", "account",
	"verify", "secure", "security", "update", "confirm", "bank",
	"paypal", "password", "credential", "wallet", "bitcoin", "crypto",
	"authenticate", "verification", "authorize", "recover", "reset",
}

var suspiciousTLDs = []string{
	".tk", ".ml", ".ga", ".cf", ".gq", ".xyz", ".top", ".club", ".live", ".site",
}

var popularBrands = []string{
	"google", "facebook", "amazon", "apple", "microsoft",
	"netflix", "paypal", "instagram", "twitter", "linkedin",
	"youtube", "outlook", "gmail", "yahoo", "bank", "chase",
	"wellsfargo", "citi", "citibank", "amex", "americanexpress",
}

var ipv4Pattern = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

// target is the pre-parsed view of a URL handed to every rule.
type target struct {
	raw     string
	scheme  string
	host    string // lowercased hostname
	path    string
	lowered string // host + path, lowercased
}

// signal is one triggered indicator with its score adjustment. Positive
// deltas land in the positive indicator list, negative in the suspicious one.
type signal struct {
	reason string
	delta  int
}

// rule evaluates a single independent heuristic. Rules are additive, so only
// the fixed evaluation order of the table determines signal ordering.
type rule struct {
	name string
	eval func(t target) []signal
}

// heuristics is the scoring policy table. Weights are a starting policy, not
// calibrated ground truth; tune them here without touching control flow.
var heuristics = []rule{
	{name: "suspicious-keywords", eval: evalKeywords},
	{name: "transport-security", eval: evalTransport},
	{name: "suspicious-tld", eval: evalTLD},
	{name: "typosquatting", eval: evalTyposquat},
	{name: "excess-subdomains", eval: evalSubdomains},
	{name: "ip-literal-host", eval: evalIPLiteral},
	{name: "special-characters", eval: evalSpecialChars},
	{name: "url-length", eval: evalLength},
	{name: "high-entropy-label", eval: evalEntropy},
}

func evalKeywords(t target) []signal {
	var out []signal
	for _, kw := range suspiciousKeywords {
		if strings.Contains(t.lowered, kw) {
			out = append(out, signal{fmt.Sprintf("Contains suspicious keyword: %s", kw), -5})
		}
	}
	return out
}

func evalTransport(t target) []signal {
	if t.scheme == "https" {
		return []signal{{"Uses secure HTTPS connection", 10}}
	}
	return []signal{{"Not using secure HTTPS connection", -15}}
}

func evalTLD(t target) []signal {
	var out []signal
	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(t.host, tld) {
			out = append(out, signal{fmt.Sprintf("Using potentially suspicious TLD: %s", tld), -7})
		}
	}
	return out
}

func evalTyposquat(t target) []signal {
	var out []signal
	for _, brand := range popularBrands {
		if strings.Contains(t.host, brand) &&
			t.host != brand+".com" &&
			!strings.HasSuffix(t.host, "."+brand+".com") {
			out = append(out, signal{fmt.Sprintf("Potential typosquatting of: %s", brand), -15})
		}
	}
	return out
}

func evalSubdomains(t target) []signal {
	// Dotted-quad hosts are the IP-literal rule's business, not extra labels.
	if net.ParseIP(t.host) != nil {
		return nil
	}
	if len(strings.Split(t.host, ".")) > 3 {
		return []signal{{"Excessive number of subdomains", -10}}
	}
	return nil
}

func evalIPLiteral(t target) []signal {
	if ipv4Pattern.MatchString(t.host) {
		return []signal{{"Uses IP address instead of domain name", -20}}
	}
	return nil
}

func evalSpecialChars(t target) []signal {
	specials := 0
	for _, r := range t.path {
		if !isAlphanumeric(r) {
			specials++
		}
	}
	if specials > 5 {
		return []signal{{"Contains excessive special characters", -5}}
	}
	return nil
}

func evalLength(t target) []signal {
	if len(t.raw) > 100 {
		return []signal{{"Excessively long URL", -10}}
	}
	return nil
}

func evalEntropy(t target) []signal {
	label := t.host
	if i := strings.IndexByte(label, '.'); i >= 0 {
		label = label[:i]
	}
	if len(label) > 10 && Entropy(label) > 4 {
		return []signal{{"Random-looking domain name", -15}}
	}
	return nil
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Entropy computes the base-2 Shannon entropy of the character-frequency
// distribution of s, in bits per character. Entropy("aaaa") is 0,
// Entropy("ab") is 1.
func Entropy(s string) float64 {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0
	}
	counts := make(map[rune]int, len(runes))
	for _, r := range runes {
		counts[r]++
	}
	n := float64(len(runes))
	entropy := 0.0
	for _, c := range counts {
		p := float64(c) / n
		entropy -= p * math.Log2(p)
	}
	return entropy
}
