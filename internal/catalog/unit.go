package catalog

// TypeID names a unit archetype.
type TypeID string

// Stock roster.
const (
	MilitiaSpearman  TypeID = "Militia Spearman"
	Pikeman          TypeID = "Pikeman"
	ArmoredSpearman  TypeID = "Armored Spearman"
	ManAtArms        TypeID = "Man-at-Arms"
	FootKnight       TypeID = "Foot Knight"
	Halberdier       TypeID = "Halberdier"
	MilitiaArcher    TypeID = "Militia Archer"
	Skirmisher       TypeID = "Skirmisher"
	Archer           TypeID = "Archer"
	Crossbowman      TypeID = "Crossbowman"
	Longbowman       TypeID = "Longbowman"
	HeavyCrossbowman TypeID = "Heavy Crossbowman"
	LightCavalry     TypeID = "Light Cavalry"
	HorseArcher      TypeID = "Horse Archer"
	Lancer           TypeID = "Lancer"
	Knight           TypeID = "Knight"
	Paladin          TypeID = "Paladin"
	VeteranHorseArch TypeID = "Veteran Horse Archer"
)

// UnitType holds the combat stats of one archetype.
type UnitType struct {
	ID          TypeID `yaml:"name"`
	DefaultSize int    `yaml:"default_size"`
	Damage      int    `yaml:"damage"`
	MeleeArmor  int    `yaml:"melee_armor"`
	RangedArmor int    `yaml:"ranged_armor"`
	Speed       int    `yaml:"speed"`
}

// RecruitmentCost is the gold needed to queue one full stack.
func (u UnitType) RecruitmentCost() int {
	return u.DefaultSize*2 + u.Damage*10 + u.MeleeArmor*5 + u.RangedArmor*5
}

// PowerPerSoldier is the per-soldier weight used by combat power scores.
func (u UnitType) PowerPerSoldier() int {
	return u.Damage + u.MeleeArmor + u.Speed
}

// String returns the unit name.
func (u UnitType) String() string {
	return string(u.ID)
}

// Roster lists the units a production building unlocks per level.
// Tiers[0] is unlocked at level 1, Tiers[1] at level 2 and Tiers[2] at level 3.
type Roster struct {
	Building Building
	Tiers    [MaxLevel][]TypeID
}

var stockUnits = []UnitType{
	{MilitiaSpearman, 120, 5, 2, 1, 3},
	{Pikeman, 150, 8, 4, 2, 2},
	{ArmoredSpearman, 120, 9, 5, 3, 3},
	{ManAtArms, 120, 10, 6, 3, 3},
	{FootKnight, 100, 16, 10, 8, 2},
	{Halberdier, 100, 14, 10, 8, 2},

	{MilitiaArcher, 80, 4, 1, 3, 4},
	{Skirmisher, 80, 3, 1, 2, 5},
	{Archer, 80, 6, 2, 3, 4},
	{Crossbowman, 70, 10, 2, 4, 3},
	{Longbowman, 70, 12, 3, 5, 4},
	{HeavyCrossbowman, 60, 14, 4, 6, 3},

	{LightCavalry, 80, 7, 3, 2, 8},
	{HorseArcher, 80, 6, 2, 4, 8},
	{Lancer, 70, 15, 5, 4, 7},
	{Knight, 60, 20, 10, 8, 6},
	{Paladin, 60, 27, 12, 10, 6},
	{VeteranHorseArch, 60, 10, 4, 8, 9},
}

var stockRosters = []Roster{
	{Building: Barracks, Tiers: [MaxLevel][]TypeID{
		{MilitiaSpearman},
		{Pikeman, ArmoredSpearman, ManAtArms},
		{FootKnight, Halberdier},
	}},
	{Building: ArcheryRange, Tiers: [MaxLevel][]TypeID{
		{MilitiaArcher, Skirmisher},
		{Archer, Crossbowman},
		{Longbowman, HeavyCrossbowman},
	}},
	{Building: Stables, Tiers: [MaxLevel][]TypeID{
		{LightCavalry},
		{HorseArcher, Lancer, Knight},
		{Paladin, VeteranHorseArch},
	}},
}

// StockUnits returns a copy of the built-in unit table.
func StockUnits() []UnitType {
	out := make([]UnitType, len(stockUnits))
	copy(out, stockUnits)
	return out
}

// StockRosters returns a copy of the built-in unlock rosters.
func StockRosters() []Roster {
	out := make([]Roster, len(stockRosters))
	for i, r := range stockRosters {
		out[i].Building = r.Building
		for t := range r.Tiers {
			out[i].Tiers[t] = append([]TypeID(nil), r.Tiers[t]...)
		}
	}
	return out
}
