package survey

// Axis is one maturity dimension. Long and Short always describe the same axis.
type Axis struct {
	Long  string
	Short string
}

// Axes is the fixed, ordered catalog of assessed dimensions.
var Axes = [AxisCount]Axis{
	{Long: "Stratégie et gouvernance", Short: "Stratégie"},
	{Long: "Organisation et compétences", Short: "Organisation"},
	{Long: "Données et pipelines", Short: "Données"},
	{Long: "Plateforme et opérations", Short: "Plateforme"},
	{Long: "Sécurité et conformité", Short: "Sécurité"},
	{Long: "Processus et adoption métier", Short: "Processus"},
	{Long: "Cas d'usage – valeur (économies + création)", Short: "Cas d'usage"},
	{Long: "Économie et mesure de la valeur (KPIs/ROI/TCO)", Short: "Économie"},
}

const AxisCount = 8

func ShortNames() []string {
	out := make([]string, 0, AxisCount)
	for _, a := range Axes {
		out = append(out, a.Short)
	}
	return out
}

// Spreadsheet column headers for one axis.
func (a Axis) LevelColumn() string { return a.Long + " : le niveau de ton entreprise" }
func (a Axis) StrengthColumn() string { return a.Long + " : une force ou une initiative réussie" }
func (a Axis) WeaknessColumn() string { return a.Long + " : une faiblesse ou un frein" }
