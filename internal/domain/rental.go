package domain

import "time"

// ChildMaxAge is the oldest age still priced at child rates.
const ChildMaxAge = 13

type CustomerClass string

const (
	ClassAdult CustomerClass = "adult"
	ClassChild CustomerClass = "child"
)

type Level string

const (
	LevelBeginner    Level = "beginner"
	LevelExperienced Level = "experienced"
	LevelAdvanced    Level = "advanced"
)

func (l *Level) UnmarshalText(b []byte) error {
	v, err := parseEnum("level", b, LevelBeginner, LevelExperienced, LevelAdvanced)
	*l = v
	return err
}

type GearStyle string

const (
	GearSingleBoard GearStyle = "single"
	GearDoubleBoard GearStyle = "double"
)

func (g *GearStyle) UnmarshalText(b []byte) error {
	v, err := parseEnum("gear style", b, GearSingleBoard, GearDoubleBoard)
	*g = v
	return err
}

type BoardTier string

const (
	TierStandard BoardTier = "standard"
	TierAdvanced BoardTier = "advanced"
	TierPowder   BoardTier = "powder"
)

func (t *BoardTier) UnmarshalText(b []byte) error {
	v, err := parseEnum("board tier", b, TierStandard, TierAdvanced, TierPowder)
	*t = v
	return err
}

type Bundle string

const (
	BundleFullSet    Bundle = "full_set"
	BundleBoardBoots Bundle = "board_boots"
	BundleBoardOnly  Bundle = "board_only"
)

func (b *Bundle) UnmarshalText(raw []byte) error {
	v, err := parseEnum("equipment bundle", raw, BundleFullSet, BundleBoardBoots, BundleBoardOnly)
	*b = v
	return err
}

type Outerwear string

const (
	OuterwearJacket  Outerwear = "jacket"
	OuterwearPants   Outerwear = "pants"
	OuterwearFullSet Outerwear = "full_set"
	OuterwearNone    Outerwear = "none"
)

func (o *Outerwear) UnmarshalText(b []byte) error {
	v, err := parseEnum("outerwear", b, OuterwearJacket, OuterwearPants, OuterwearFullSet, OuterwearNone)
	*o = v
	return err
}

type Store string

const (
	StoreFurano    Store = "furano"
	StoreAsahikawa Store = "asahikawa"
)

func (s *Store) UnmarshalText(b []byte) error {
	v, err := parseEnum("store", b, StoreFurano, StoreAsahikawa)
	*s = v
	return err
}

type Messenger string

const (
	MessengerWhatsApp Messenger = "whatsapp"
	MessengerWeChat   Messenger = "wechat"
	MessengerLine     Messenger = "line"
)

func (m *Messenger) UnmarshalText(b []byte) error {
	v, err := parseEnum("messenger", b, MessengerWhatsApp, MessengerWeChat, MessengerLine)
	*m = v
	return err
}

type ShuttleMode string

const (
	ShuttleNone ShuttleMode = "none"
	ShuttleNeed ShuttleMode = "need"
)

func (m *ShuttleMode) UnmarshalText(b []byte) error {
	v, err := parseEnum("shuttle mode", b, ShuttleNone, ShuttleNeed)
	*m = v
	return err
}

type ShuttleLeg string

const (
	ShuttleRentalHotelToShop ShuttleLeg = "rental_hotel_to_shop"
	ShuttleRentalShopToSlope ShuttleLeg = "rental_shop_to_slope"
	ShuttleReturnSlopeToShop ShuttleLeg = "return_slope_to_shop"
	ShuttleReturnShopToHotel ShuttleLeg = "return_shop_to_hotel"
)

func (l *ShuttleLeg) UnmarshalText(b []byte) error {
	v, err := parseEnum("shuttle leg", b,
		ShuttleRentalHotelToShop, ShuttleRentalShopToSlope, ShuttleReturnSlopeToShop, ShuttleReturnShopToHotel)
	*l = v
	return err
}

// RentalPerson is one skier or rider on a rental request. Pointer fields
// distinguish "unanswered" from a zero answer.
type RentalPerson struct {
	Name       string    `json:"name" yaml:"name"`
	Age        *int      `json:"age" yaml:"age"`
	Gender     string    `json:"gender" yaml:"gender"`
	Height     string    `json:"height" yaml:"height"`
	Weight     string    `json:"weight" yaml:"weight"`
	FootSize   string    `json:"footSize" yaml:"foot_size"`
	Level      Level     `json:"level" yaml:"level"`
	GearStyle  GearStyle `json:"gearStyle" yaml:"gear_style"`
	BoardTier  BoardTier `json:"boardTier" yaml:"board_tier"`
	Bundle     Bundle    `json:"bundle" yaml:"bundle"`
	Outerwear  Outerwear `json:"outerwear" yaml:"outerwear"`
	HelmetOnly *bool     `json:"helmetOnly" yaml:"helmet_only"`
	FastWear   *bool     `json:"fastWear" yaml:"fast_wear"`
}

// Normalize applies the full-set rule: outerwear and helmet are part of the
// bundle, so the separate answers are forced to none/false.
func (p RentalPerson) Normalize() RentalPerson {
	if p.Bundle == BundleFullSet {
		no := false
		p.Outerwear = OuterwearNone
		p.HelmetOnly = &no
	}
	return p
}

func (p RentalPerson) Class() CustomerClass {
	if p.Age != nil && *p.Age <= ChildMaxAge {
		return ClassChild
	}
	return ClassAdult
}

func (p RentalPerson) WantsHelmet() bool {
	return p.HelmetOnly != nil && *p.HelmetOnly
}

func (p RentalPerson) WantsFastWear() bool {
	return p.FastWear != nil && *p.FastWear
}

type Applicant struct {
	Name        string       `json:"name" yaml:"name"`
	CountryCode string       `json:"countryCode" yaml:"country_code"`
	Phone       string       `json:"phone" yaml:"phone"`
	Email       string       `json:"email" yaml:"email"`
	Messenger   Messenger    `json:"messenger" yaml:"messenger"`
	MessengerID string       `json:"messengerId" yaml:"messenger_id"`
	Hotel       string       `json:"hotel" yaml:"hotel"`
	ShuttleMode ShuttleMode  `json:"shuttleMode" yaml:"shuttle_mode"`
	Shuttle     []ShuttleLeg `json:"shuttle" yaml:"shuttle"`
}

// DefaultCountryCode is preselected for new applicants.
const DefaultCountryCode = "+81"

func NewApplicant() Applicant {
	return Applicant{CountryCode: DefaultCountryCode, ShuttleMode: ShuttleNone}
}

// WithShuttleMode switches the transport choice and clears any legs picked
// under the previous choice.
func (a Applicant) WithShuttleMode(mode ShuttleMode) Applicant {
	a.ShuttleMode = mode
	a.Shuttle = nil
	return a
}

// QuoteDetail is the per-person price breakdown. Index is 1-based.
type QuoteDetail struct {
	Index      int           `json:"idx"`
	Class      CustomerClass `json:"group"`
	Main       int           `json:"main"`
	Boots      int           `json:"boots"`
	Outerwear  int           `json:"clothing"`
	Helmet     int           `json:"helmet"`
	FastWear   int           `json:"fastWear"`
	CrossStore int           `json:"cross"`
	Subtotal   int           `json:"subtotal"`
}

// RentalSubmission is the payload the reservation form posts to the intake
// endpoint.
type RentalSubmission struct {
	Applicant   Applicant      `json:"applicant"`
	Persons     []RentalPerson `json:"persons"`
	StartDate   string         `json:"startDate"`
	EndDate     string         `json:"endDate"`
	RentStore   Store          `json:"rentStore"`
	ReturnStore Store          `json:"returnStore"`
	Price       int            `json:"price"`
	Detail      []QuoteDetail  `json:"detail"`
}

const RentalRequestStatusReceived = "received"

// RentalRequest is an accepted submission, priced by the server.
type RentalRequest struct {
	ID          string
	Reference   string
	Applicant   Applicant
	Persons     []RentalPerson
	StartDate   time.Time
	EndDate     time.Time
	RentStore   Store
	ReturnStore Store
	Days        int
	TotalPrice  int
	Detail      []QuoteDetail
	Status      string
	CreatedAt   time.Time
}
