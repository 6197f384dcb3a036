// Package ontology holds the fixed domain vocabulary the matchers score
// against: type compatibility tables, semantic keyword groups and the
// business→technical mapping tables bridging e-contract concepts to
// smart-contract constructs. All tables are symmetric set-membership lookups.
package ontology

import "strings"

// Entity type tags seen across both graph roles.
const (
	TypePerson        = "PERSON"
	TypeOrganization  = "ORGANIZATION"
	TypeParty         = "PARTY"
	TypeMoney         = "MONEY"
	TypeFinancial     = "FINANCIAL"
	TypeDate          = "DATE"
	TypeTime          = "TIME"
	TypeObligation    = "OBLIGATION"
	TypeLegalTerm     = "LEGAL_TERM"
	TypeLocation      = "LOCATION"
	TypeContract      = "CONTRACT"
	TypeFunction      = "FUNCTION"
	TypeEvent         = "EVENT"
	TypeModifier      = "MODIFIER"
	TypeParameter     = "PARAMETER"
	TypeVariable      = "VARIABLE"
	TypeStateVariable = "STATE_VARIABLE"
)

// Coarse category tags.
const (
	CategoryParty           = "PARTY"
	CategoryFinancial       = "FINANCIAL"
	CategoryTemporal        = "TEMPORAL"
	CategoryLegalObligation = "LEGAL_OBLIGATION"
	CategoryLegalTerm       = "LEGAL_TERM"
	CategoryLocation        = "LOCATION"
	CategoryContractDef     = "CONTRACT_DEFINITION"
	CategoryFunctionDef     = "FUNCTION_DEFINITION"
	CategoryStateStorage    = "STATE_STORAGE"
	CategoryAccessControl   = "ACCESS_CONTROL"
	CategoryEventDef        = "EVENT_DEFINITION"
	CategoryParameter       = "PARAMETER"
)

type set map[string]struct{}

func newSet(members ...string) set {
	s := make(set, len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

func (s set) has(v string) bool {
	_, ok := s[v]
	return ok
}

// compatibilityGroups list type tags that count as directly compatible.
// Membership is symmetric: two tags sharing any group are compatible.
var compatibilityGroups = []set{
	newSet(TypePerson, TypeOrganization, TypeParty, "ORG", "CONTRACT_PARTY", TypeVariable, TypeStateVariable, TypeParameter),
	newSet(TypeMoney, TypeFinancial, "MONETARY_AMOUNT", "CURRENCY", "AMOUNT", TypeVariable, TypeStateVariable, TypeParameter),
	newSet(TypeDate, TypeTime, "TEMPORAL", "DATE_TERMS", "DURATION", TypeVariable, TypeStateVariable),
	newSet(TypeFunction, "SMART_CONTRACT_FUNCTION", "FUNCTION_DEFINITION", TypeObligation, "OBLIGATIONS", "CONDITIONS"),
	newSet(TypeContract, "SMART_CONTRACT", "AGREEMENT", "CONTRACT_DEFINITION"),
	newSet(TypeLocation, "GPE", "ADDRESS", "PROPERTY", TypeVariable, TypeStateVariable),
}

// relatedDomainGroups are looser groupings: tags here share a domain without
// being directly substitutable.
var relatedDomainGroups = []set{
	newSet(TypePerson, "ORG", TypeOrganization, TypeParty, "CONTRACT_PARTY", TypeVariable, "GENERAL", TypeEvent),
	newSet(TypeMoney, TypeFinancial, "MONETARY_AMOUNT", "CURRENCY", TypeVariable, TypeStateVariable, TypeFunction, TypeEvent),
	newSet(TypeDate, "TEMPORAL", TypeTime, "DURATION", TypeVariable, TypeStateVariable, TypeModifier),
	newSet(TypeFunction, "SMART_CONTRACT_FUNCTION", TypeObligation, "OBLIGATIONS", "CONDITIONS", TypeModifier, TypeEvent),
	newSet(TypeContract, "SMART_CONTRACT", "AGREEMENT", "CONTRACT_DEFINITION", TypeLegalTerm),
	newSet(TypeLocation, "GPE", "ADDRESS", "PROPERTY", TypeVariable, TypeStateVariable),
}

// CompatibleTypes reports whether two entity type tags belong to the same
// compatibility group.
func CompatibleTypes(a, b string) bool {
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	for _, g := range compatibilityGroups {
		if g.has(a) && g.has(b) {
			return true
		}
	}
	return false
}

// RelatedDomains reports whether two entity type tags at least share a domain.
func RelatedDomains(a, b string) bool {
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	for _, g := range relatedDomainGroups {
		if g.has(a) && g.has(b) {
			return true
		}
	}
	return false
}

// semanticGroups bucket entity surface text into coarse semantic categories.
// Jaccard overlap of the category sets is the matchers' semantic signal.
var semanticGroups = map[string][]string{
	"financial": {"payment", "money", "amount", "fee", "cost", "price", "salary", "wage", "balance", "value", "$", "rent", "deposit", "uint256", "payable"},
	"temporal":  {"date", "time", "deadline", "duration", "month", "day", "year", "start", "end", "timestamp", "term", "expires", "begins", "ends"},
	"party":     {"party", "client", "provider", "contractor", "organization", "company", "person", "owner", "tenant", "landlord", "lessor", "lessee", "buyer", "seller"},
	"contract":  {"contract", "agreement", "obligation", "condition", "clause", "provision", "rental", "lease", "employment", "shall"},
	"action":    {"function", "method", "operation", "complete", "execute", "perform", "deliver", "pay", "receive", "transfer"},
	"storage":   {"variable", "storage", "state", "data", "attribute", "field", "mapping", "public", "address"},
	"status":    {"completed", "active", "finished", "approved", "signed", "executed", "pending", "fulfilled"},
}

// SemanticCategories returns the set of semantic group names whose keywords
// appear in the given text blobs (surface text plus flattened properties).
func SemanticCategories(texts ...string) map[string]struct{} {
	joined := strings.ToLower(strings.Join(texts, " "))
	out := make(map[string]struct{})
	for name, keywords := range semanticGroups {
		for _, kw := range keywords {
			if strings.Contains(joined, kw) {
				out[name] = struct{}{}
				break
			}
		}
	}
	return out
}

// JaccardCategories is the Jaccard similarity of two semantic category sets.
func JaccardCategories(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// EntityMapping pairs business-side lexical patterns with the technical
// identifiers generated smart contracts use for the same concept.
type EntityMapping struct {
	Name      string
	Patterns  []string // business-side surface text
	Variables []string // technical-side identifiers
}

var entityMappings = []EntityMapping{
	{
		Name:      "party",
		Patterns:  []string{"corporation", "company", "inc", "llc", "ltd", "party", "client", "provider", "contractor", "landlord", "tenant", "employee", "employer", "lessor", "lessee", "buyer", "seller", "customer", "supplier"},
		Variables: []string{"client", "provider", "party", "owner", "contractor", "payee", "payer", "address", "account", "tenant", "landlord", "employee", "employer"},
	},
	{
		Name:      "financial",
		Patterns:  []string{"$", "usd", "gbp", "payment", "fee", "cost", "amount", "price", "salary", "wage", "rent", "money", "deposit"},
		Variables: []string{"amount", "price", "fee", "payment", "balance", "value", "cost", "uint256", "deposit"},
	},
	{
		Name:      "contract",
		Patterns:  []string{"contract", "agreement", "lease", "rental", "employment", "service"},
		Variables: []string{"contract", "agreement", "active", "created", "activated"},
	},
	{
		Name:      "action",
		Patterns:  []string{"pay", "receive", "send", "transfer", "activate", "terminate", "create", "obligation"},
		Variables: []string{"function", "event", "activate", "terminate", "payment", "transfer"},
	},
	{
		Name:      "temporal",
		Patterns:  []string{"month", "day", "year", "deadline", "duration", "start", "end", "january", "february", "march", "april", "june", "july", "august", "september", "october", "november", "december"},
		Variables: []string{"deadline", "timestamp", "duration", "starttime", "endtime", "expiry", "date"},
	},
	{
		Name:      "status",
		Patterns:  []string{"completed", "finished", "approved", "signed", "agreed", "active", "inactive", "pending", "cancelled"},
		Variables: []string{"completed", "approved", "signed", "active", "finished", "executed", "status"},
	},
	{
		Name:      "location",
		Patterns:  []string{"street", "city", "country", "location", "property", "premises", "building"},
		Variables: []string{"location", "property", "propertyaddress", "info"},
	},
	{
		Name:      "condition",
		Patterns:  []string{"if", "when", "provided", "condition", "requirement", "unless", "except"},
		Variables: []string{"condition", "requirement", "check", "validate", "verify", "require"},
	},
}

// technicalEntityTypes are target-side tags a business pattern can map onto
// even without a variable-name hit.
var technicalEntityTypes = newSet(TypeVariable, TypeStateVariable, TypeParameter, TypeFunction, TypeEvent)

// MappingStrength grades a business→technical entity mapping hit.
type MappingStrength int

const (
	MappingNone MappingStrength = iota
	MappingPartial
	MappingStrong
)

// EntityMappingStrength checks every mapping table: a hit on both sides is
// strong; a business-pattern hit against any technical-typed element is
// partial.
func EntityMappingStrength(sourceText, targetText, targetType string) MappingStrength {
	src := strings.ToLower(sourceText)
	tgt := strings.ToLower(targetText)
	tgtType := strings.ToUpper(targetType)

	best := MappingNone
	for _, m := range entityMappings {
		srcHit := containsAny(src, m.Patterns)
		if !srcHit {
			continue
		}
		if containsAny(tgt, m.Variables) {
			return MappingStrong
		}
		if technicalEntityTypes.has(tgtType) {
			best = MappingPartial
		}
	}
	return best
}

// RelationMapping pairs business relation vocabulary with the technical
// relation vocabulary generated contracts express it with.
type RelationMapping struct {
	Name      string
	Business  []string
	Technical []string
}

var relationMappings = []RelationMapping{
	{
		Name:      "payment",
		Business:  []string{"payment", "pays", "financial", "monetary", "fee", "salary", "rent", "deposit", "compensation"},
		Technical: []string{"contains", "has_member", "stores", "transfers", "updates", "tracks"},
	},
	{
		Name:      "obligation",
		Business:  []string{"obligation", "must", "shall", "required", "duty", "responsibility", "responsible", "liable"},
		Technical: []string{"contains", "has_parameter", "calls", "requires", "validates", "controls", "enforces", "emits"},
	},
	{
		Name:      "temporal",
		Business:  []string{"temporal", "deadline", "duration", "schedule", "expires", "starts_on", "ends_on", "has_duration"},
		Technical: []string{"contains", "depends_on", "triggers", "timestamps", "stores"},
	},
	{
		Name:      "condition",
		Business:  []string{"condition", "if_then", "requires", "depends_on", "contingent", "provided"},
		Technical: []string{"has_parameter", "contains", "controls", "validates", "checks"},
	},
	{
		Name:      "co_occurrence",
		Business:  []string{"co_occurrence", "association", "relates_to", "linked_to", "involves", "between", "ownership", "party_relationship"},
		Technical: []string{"contains", "has_member", "references", "stores", "manages", "owns", "controls"},
	},
}

// genericContainment relations count as a partial landing spot for any
// business relation.
var genericContainment = newSet("contains", "has_member", "has_parameter", "stores")

// RelationMappingStrength grades a business→technical relation mapping hit.
func RelationMappingStrength(sourceRelation, targetRelation string) MappingStrength {
	src := strings.ToLower(sourceRelation)
	tgt := strings.ToLower(targetRelation)

	best := MappingNone
	for _, m := range relationMappings {
		srcHit := containsAny(src, m.Business)
		if !srcHit {
			continue
		}
		if containsAny(tgt, m.Technical) {
			return MappingStrong
		}
		if genericContainment.has(tgt) {
			best = MappingPartial
		}
	}
	return best
}

// relationCompatibilityGroups list relation tags that count as compatible
// without a mapping-table hit.
var relationCompatibilityGroups = []set{
	newSet("payment", "transfers", "pays", "financial_obligation", "payment_obligation"),
	newSet("obligation", "responsibility", "validates", "enforces", "requires", "controls"),
	newSet("contains", "has_member", "has_parameter", "includes", "holds", "stores"),
	newSet("temporal", "triggers", "schedules", "starts_on", "ends_on", "has_duration", "depends_on"),
	newSet("co_occurrence", "references", "relates_to", "linked_to", "association"),
	newSet("emits", "logs", "announces", "signals", "notifies"),
}

// CompatibleRelations reports whether two relation tags share a compatibility
// group.
func CompatibleRelations(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	for _, g := range relationCompatibilityGroups {
		if g.has(a) && g.has(b) {
			return true
		}
	}
	return false
}

// relationSemanticGroups bucket relation tags the way semanticGroups buckets
// entity text.
var relationSemanticGroups = map[string][]string{
	"control":    {"control", "enforce", "validate", "require", "manage", "restrict", "modifier", "obligation"},
	"data":       {"store", "contain", "has_member", "has_parameter", "reference", "hold", "map"},
	"temporal":   {"time", "date", "deadline", "schedule", "trigger", "expire", "duration", "start", "end"},
	"financial":  {"pay", "transfer", "amount", "balance", "fee", "rent", "deposit", "financial"},
	"structural": {"contain", "inherit", "define", "declare", "member", "parameter", "part_of"},
}

// RelationSemanticCategories returns the relation semantic groups a tag (plus
// any extra context) falls into.
func RelationSemanticCategories(texts ...string) map[string]struct{} {
	joined := strings.ToLower(strings.Join(texts, " "))
	out := make(map[string]struct{})
	for name, keywords := range relationSemanticGroups {
		for _, kw := range keywords {
			if strings.Contains(joined, kw) {
				out[name] = struct{}{}
				break
			}
		}
	}
	return out
}

// Role-specific critical category lists: unmatched elements in these
// categories flag the comparison for attention.
var (
	criticalSourceCategories = newSet(CategoryParty, CategoryFinancial, CategoryLegalObligation, CategoryTemporal)
	criticalTargetCategories = newSet(CategoryContractDef, CategoryFunctionDef, CategoryStateStorage, CategoryAccessControl)
)

func CriticalSourceCategory(category string) bool {
	return criticalSourceCategories.has(strings.ToUpper(category))
}

func CriticalTargetCategory(category string) bool {
	return criticalTargetCategories.has(strings.ToUpper(category))
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
