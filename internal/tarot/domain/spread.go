package domain

// Tier is the subscription level read from the user's profile
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// ParseTier defaults anything unknown to free
func ParseTier(s string) Tier {
	if Tier(s) == TierPremium {
		return TierPremium
	}
	return TierFree
}

// Position is one labelled slot of a spread
type Position struct {
	Name   string `json:"name"`
	NamePT string `json:"name_pt"`
}

// Spread describes a layout the client can draw
type Spread struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	NamePT    string     `json:"name_pt"`
	Positions []Position `json:"positions"`
	Tier      Tier       `json:"tier"`
}

var spreads = []Spread{
	{
		ID: "single", Name: "Single Card", NamePT: "Carta Única", Tier: TierFree,
		Positions: []Position{{"Message", "Mensagem"}},
	},
	{
		ID: "yes-no", Name: "Yes or No", NamePT: "Sim ou Não", Tier: TierFree,
		Positions: []Position{{"Answer", "Resposta"}},
	},
	{
		ID: "three-card", Name: "Past, Present, Future", NamePT: "Passado, Presente, Futuro", Tier: TierFree,
		Positions: []Position{{"Past", "Passado"}, {"Present", "Presente"}, {"Future", "Futuro"}},
	},
	{
		ID: "love", Name: "Love Spread", NamePT: "Tiragem do Amor", Tier: TierPremium,
		Positions: []Position{
			{"You", "Você"},
			{"The other person", "A outra pessoa"},
			{"The connection", "A conexão"},
			{"Challenges", "Desafios"},
			{"Potential", "Potencial"},
		},
	},
	{
		ID: "career", Name: "Career Spread", NamePT: "Tiragem da Carreira", Tier: TierPremium,
		Positions: []Position{
			{"Current situation", "Situação atual"},
			{"Obstacles", "Obstáculos"},
			{"Strengths", "Pontos fortes"},
			{"Action to take", "Ação a tomar"},
			{"Outcome", "Resultado"},
		},
	},
	{
		ID: "celtic-cross", Name: "Celtic Cross", NamePT: "Cruz Celta", Tier: TierPremium,
		Positions: []Position{
			{"Present", "Presente"},
			{"Challenge", "Desafio"},
			{"Foundation", "Base"},
			{"Recent past", "Passado recente"},
			{"Crown", "Coroa"},
			{"Near future", "Futuro próximo"},
			{"Self", "Você"},
			{"Environment", "Ambiente"},
			{"Hopes and fears", "Esperanças e medos"},
			{"Outcome", "Resultado"},
		},
	},
}

// Spreads returns the spread catalog
func Spreads() []Spread {
	out := make([]Spread, len(spreads))
	copy(out, spreads)
	return out
}

// SpreadByID returns the catalog spread, if any
func SpreadByID(id string) (Spread, bool) {
	for _, s := range spreads {
		if s.ID == id {
			return s, true
		}
	}
	return Spread{}, false
}

// Allows reports whether a user on tier may draw this spread
func (s Spread) Allows(tier Tier) bool {
	return s.Tier != TierPremium || tier == TierPremium
}
