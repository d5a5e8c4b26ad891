package model

import "sort"

// worldLocations maps continent → region → countries. Enumeration order of
// regions is fixed by continentRegions so fan-out is deterministic.
var worldLocations = map[string]map[string][]string{
	"Asia": {
		"South-Eastern Asia": {"Indonesia", "Malaysia", "Singapore", "Thailand", "Vietnam", "Philippines", "Myanmar", "Cambodia", "Laos", "Brunei", "Timor-Leste"},
		"Eastern Asia":       {"China", "Japan", "South Korea", "Taiwan", "Mongolia", "North Korea", "Hong Kong", "Macau"},
		"Southern Asia":      {"India", "Pakistan", "Bangladesh", "Sri Lanka", "Nepal", "Maldives", "Bhutan", "Afghanistan"},
		"Western Asia":       {"United Arab Emirates", "Saudi Arabia", "Turkey", "Israel", "Qatar", "Kuwait", "Iraq", "Iran", "Oman", "Jordan", "Lebanon", "Bahrain", "Yemen", "Syria", "Cyprus", "Georgia", "Armenia", "Azerbaijan"},
		"Central Asia":       {"Kazakhstan", "Uzbekistan", "Turkmenistan", "Kyrgyzstan", "Tajikistan"},
	},
	"Europe": {
		"Western Europe":  {"Germany", "France", "Netherlands", "Belgium", "Austria", "Switzerland", "Luxembourg", "Liechtenstein", "Monaco"},
		"Northern Europe": {"United Kingdom", "Sweden", "Denmark", "Finland", "Norway", "Ireland", "Lithuania", "Latvia", "Estonia", "Iceland"},
		"Southern Europe": {"Italy", "Spain", "Greece", "Portugal", "Croatia", "Serbia", "Slovenia", "Malta", "Albania", "Bosnia and Herzegovina", "Montenegro", "North Macedonia"},
		"Eastern Europe":  {"Russia", "Poland", "Ukraine", "Romania", "Czech Republic", "Hungary", "Bulgaria", "Slovakia", "Belarus", "Moldova"},
	},
	"Americas": {
		"North America":   {"United States", "Canada", "Mexico"},
		"Central America": {"Panama", "Costa Rica", "Guatemala", "Honduras", "El Salvador", "Nicaragua", "Belize"},
		"Caribbean":       {"Cuba", "Dominican Republic", "Haiti", "Jamaica", "Trinidad and Tobago", "Bahamas", "Barbados", "Saint Lucia", "Puerto Rico"},
		"South America":   {"Brazil", "Argentina", "Chile", "Colombia", "Peru", "Venezuela", "Ecuador", "Bolivia", "Paraguay", "Uruguay", "Guyana", "Suriname"},
	},
	"Africa": {
		"Northern Africa": {"Egypt", "Morocco", "Algeria", "Tunisia", "Libya", "Sudan"},
		"Western Africa":  {"Nigeria", "Ghana", "Ivory Coast", "Senegal", "Mali", "Burkina Faso", "Benin", "Niger", "Togo", "Liberia", "Sierra Leone", "Guinea"},
		"Eastern Africa":  {"Kenya", "Ethiopia", "Tanzania", "Uganda", "Rwanda", "Madagascar", "Mozambique", "Zimbabwe", "Mauritius", "Somalia", "Seychelles"},
		"Southern Africa": {"South Africa", "Namibia", "Botswana", "Lesotho", "Eswatini"},
		"Middle Africa":   {"Angola", "Cameroon", "DR Congo", "Congo", "Gabon", "Chad", "Equatorial Guinea"},
	},
	"Oceania": {
		"Australia and New Zealand": {"Australia", "New Zealand"},
		"Melanesia":                 {"Papua New Guinea", "Fiji", "Solomon Islands", "Vanuatu", "New Caledonia"},
		"Micronesia":                {"Guam", "Kiribati", "Marshall Islands", "Micronesia", "Nauru", "Palau"},
		"Polynesia":                 {"Samoa", "Tonga", "Tuvalu", "American Samoa", "French Polynesia", "Cook Islands"},
	},
}

var continentRegions = map[string][]string{
	"Asia":     {"South-Eastern Asia", "Eastern Asia", "Southern Asia", "Western Asia", "Central Asia"},
	"Europe":   {"Western Europe", "Northern Europe", "Southern Europe", "Eastern Europe"},
	"Americas": {"North America", "Central America", "Caribbean", "South America"},
	"Africa":   {"Northern Africa", "Western Africa", "Eastern Africa", "Southern Africa", "Middle Africa"},
	"Oceania":  {"Australia and New Zealand", "Melanesia", "Micronesia", "Polynesia"},
}

// Continents returns the known continents sorted by name.
func Continents() []string {
	out := make([]string, 0, len(continentRegions))
	for c := range continentRegions {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Regions returns the regions of a continent in reference-table order, or
// nil for an unknown continent.
func Regions(continent string) []string {
	regions := continentRegions[continent]
	if regions == nil {
		return nil
	}
	return append([]string(nil), regions...)
}

// Countries returns the countries of a region, or nil when the continent or
// region is unknown.
func Countries(continent, region string) []string {
	countries := worldLocations[continent][region]
	if countries == nil {
		return nil
	}
	return append([]string(nil), countries...)
}

// HasRegion reports whether region belongs to continent.
func HasRegion(continent, region string) bool {
	_, ok := worldLocations[continent][region]
	return ok
}

// HasCountry reports whether country belongs to region under continent.
func HasCountry(continent, region, country string) bool {
	for _, c := range worldLocations[continent][region] {
		if c == country {
			return true
		}
	}
	return false
}

// regionHints lists the major gateways per destination region. Rate prompts
// embed them so the model covers every lane instead of a handful.
var regionHints = map[RegionDestination]string{
	DestinationAsia:         "Cover exhaustive list: China (Shanghai, Ningbo, Shenzhen, Qingdao, Tianjin, Guangzhou), Japan (Tokyo, Yokohama, Osaka, Nagoya, Kobe), Korea (Busan, Incheon), Taiwan (Kaohsiung, Keelung), Singapore, Malaysia (Port Klang, Tanjung Pelepas, Penang), Thailand (Laem Chabang, Bangkok), Vietnam (Ho Chi Minh, Haiphong, Da Nang), India (Nhava Sheva, Chennai, Mundra, Pipavav), Pakistan (Karachi, Qasim).",
	DestinationEurope:       "Cover exhaustive list: Netherlands (Rotterdam), Germany (Hamburg, Bremerhaven), Belgium (Antwerp, Zeebrugge), UK (Felixstowe, Southampton, London Gateway), France (Le Havre, Fos-sur-Mer), Spain (Valencia, Barcelona, Algeciras), Italy (Genoa, La Spezia, Trieste), Turkey (Istanbul/Ambarli, Izmit, Mersin), Greece (Piraeus), Poland (Gdansk).",
	DestinationNorthAmerica: "Cover exhaustive list: USA West Coast (Los Angeles, Long Beach, Seattle, Oakland, Tacoma), USA East Coast (New York/New Jersey, Savannah, Norfolk, Charleston, Baltimore, Port of Virginia), USA Gulf (Houston, Mobile, New Orleans), Canada (Vancouver, Prince Rupert, Montreal, Toronto).",
	DestinationSouthAmerica: "Cover exhaustive list: Brazil (Santos, Paranagua, Itajai, Rio Grande), Argentina (Buenos Aires), Chile (San Antonio, Valparaiso), Peru (Callao), Colombia (Cartagena, Buenaventura), Ecuador (Guayaquil).",
	DestinationMiddleEast:   "Cover exhaustive list: UAE (Jebel Ali, Khalifa, Khor Fakkan), Saudi Arabia (Jeddah, Dammam, King Abdullah), Qatar (Hamad), Oman (Sohar, Salalah), Jordan (Aqaba), Kuwait (Shuaiba), Iraq (Umm Qasr).",
	DestinationAfrica:       "Cover exhaustive list: South Africa (Durban, Cape Town, Port Elizabeth, Coega), Nigeria (Lagos/Apapa, Onne), Kenya (Mombasa), Egypt (Alexandria, Port Said, Damietta), Morocco (Tangier Med), Ghana (Tema), Ivory Coast (Abidjan), Senegal (Dakar), Togo (Lome).",
	DestinationOceania:      "Cover exhaustive list: Australia (Sydney, Melbourne, Brisbane, Fremantle, Adelaide), New Zealand (Auckland, Tauranga, Lyttelton, Napier).",
}

// RegionHint returns the gateway coverage hint for a destination region.
func RegionHint(r RegionDestination) string {
	return regionHints[r]
}

// Origin labels that expand to the full Indonesian facility list.
const (
	AllMajorPorts    = "All Major Ports (Sabang - Merauke)"
	AllMajorAirports = "All Major Airports (Sabang - Merauke)"
)

// IndonesianPorts is the reference list of Indonesian seaports used when a
// local-charge query asks for all major ports.
var IndonesianPorts = []string{
	"Jakarta (Tanjung Priok)", "Surabaya (Tanjung Perak)", "Semarang (Tanjung Emas)", "Banten (Merak/Ciwandan)", "Subang (Patimban)",
	"Medan (Belawan)", "Batam (Batu Ampar)", "Lampung (Panjang)", "Palembang (Boom Baru)", "Dumai", "Padang (Teluk Bayur)",
	"Pekanbaru", "Jambi", "Aceh (Malahayati)", "Bengkulu", "Pontianak (Dwikora)", "Balikpapan (Semayang)", "Banjarmasin (Trisakti)",
	"Samarinda", "Sampit", "Kumai", "Tarakan", "Makassar (Soekarno-Hatta)", "Bitung", "Palu (Pantoloan)", "Kendari", "Gorontalo",
	"Bali (Benoa)", "Lombok (Lembar)", "Kupang (Tenau)", "Ambon", "Sorong", "Jayapura", "Merauke",
}

// IndonesianAirports is the reference list of Indonesian cargo airports used
// when a local-charge query asks for all major airports.
var IndonesianAirports = []string{
	"Jakarta (CGK)", "Jakarta (HLP)", "Surabaya (SUB)", "Yogyakarta (YIA)", "Semarang (SRG)", "Solo (SOC)", "Bandung (BDO)", "Majalengka (KJT)",
	"Medan (KNO)", "Batam (BTH)", "Palembang (PLM)", "Padang (PDG)", "Pekanbaru (PKU)", "Banda Aceh (BTJ)", "Jambi (DJB)", "Pangkal Pinang (PGK)",
	"Balikpapan (BPN)", "Pontianak (PNK)", "Banjarmasin (BDJ)", "Tarakan (TRK)", "Makassar (UPG)", "Manado (MDC)", "Kendari (KDI)", "Palu (PLW)",
	"Bali (DPS)", "Lombok (LOP)", "Kupang (KOE)", "Ambon (AMQ)", "Jayapura (DJJ)", "Sorong (SOQ)", "Timika (TIM)", "Merauke (MKQ)",
}
