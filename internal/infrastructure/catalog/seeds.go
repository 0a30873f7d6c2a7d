package catalog

import "github.com/BeefBowl03/domain-generator/internal/domain"

// DefaultNiche is the bucket unmatched niches fall back to
const DefaultNiche = "backyard"

// ExcludedRetailers are generalist marketplaces that never count as competitors
var ExcludedRetailers = []string{
	"amazon.com",
	"walmart.com",
	"target.com",
	"homedepot.com",
	"lowes.com",
	"bestbuy.com",
	"costco.com",
	"samsclub.com",
	"wayfair.com",
	"overstock.com",
	"ebay.com",
	"etsy.com",
	"aliexpress.com",
	"temu.com",
	"kohls.com",
	"macys.com",
}

func store(name, domainName, description string) domain.StoreRecord {
	return domain.StoreRecord{
		Name:        name,
		URL:         "https://www." + domainName,
		Domain:      domainName,
		Description: description,
	}
}

// Seeds are the curated competitor lists per canonical niche
var Seeds = map[string][]domain.StoreRecord{
	"backyard": {
		store("BBQGuys", "bbqguys.com", "Grills, outdoor kitchens and patio furniture"),
		store("Backyard Discovery", "backyarddiscovery.com", "Playsets, gazebos and pergolas"),
		store("Frontgate", "frontgate.com", "Luxury outdoor furniture and decor"),
		store("Sunnydaze Decor", "sunnydazedecor.com", "Fire pits, fountains and garden decor"),
		store("Outdoor Living Today", "outdoorlivingtoday.com", "Cedar sheds, pergolas and garden structures"),
	},
	"man cave": {
		store("Game Room Guys", "gameroomguys.com", "Pool tables, arcade machines and bar furniture"),
		store("Ozone Billiards", "ozonebilliards.com", "Billiard tables and game room furniture"),
		store("Home Bar Direct", "homebardirect.com", "Home bars, bar stools and kegerators"),
		store("Arcade Direct", "arcadedirect.com", "Arcade cabinets and pinball machines"),
		store("Theater Seating Store", "theaterseatingstore.com", "Home theater seating"),
	},
	"drones": {
		store("Drone Nerds", "dronenerds.com", "Authorized DJI and Autel dealer"),
		store("D1 Store", "d1store.com", "Consumer and enterprise drones"),
		store("Advexure", "advexure.com", "Enterprise and agricultural drones"),
		store("Drone Fly", "dronefly.com", "Drones, gimbals and accessories"),
		store("Amazon", "amazon.com", "Marketplace"),
	},
	"garage": {
		store("Garage Storage Source", "garagestoragesource.com", "Garage cabinets and storage systems"),
		store("Tool Nut", "toolnut.com", "Professional tools and shop equipment"),
		store("Eagle Equipment", "eagleequipment.com", "Car lifts and tire changers"),
		store("Max Car Lifts", "maxcarlifts.com", "Two-post and four-post car lifts"),
		store("Home Depot", "homedepot.com", "Home improvement retailer"),
	},
	"home gym": {
		store("Rogue Fitness", "roguefitness.com", "Racks, barbells and conditioning"),
		store("Fitness Factory", "fitnessfactory.com", "Home and commercial gym equipment"),
		store("Garage Gym Reviews Shop", "garagegymshop.com", "Home gym bundles"),
		store("Johnson Fitness", "johnsonfitness.com", "Treadmills and ellipticals"),
		store("Fitness Superstore", "fitness-superstore.com", "Cardio and strength equipment"),
	},
	"hot tubs": {
		store("Hot Tub Outpost", "hottuboutpost.com", "Hot tubs, swim spas and saunas"),
		store("Spa Depot", "spadepot.com", "Hot tub parts and covers"),
		store("Hot Tub Warehouse", "hottubwarehouse.com", "Portable and in-ground spas"),
		store("Swim Spa Direct", "swimspadirect.com", "Swim spas and exercise pools"),
	},
	"saunas": {
		store("Sauna Place", "saunaplace.com", "Infrared and traditional saunas"),
		store("Almost Heaven Saunas", "almostheaven.com", "Barrel saunas"),
		store("Hot Tub Outpost", "hottuboutpost.com", "Hot tubs, swim spas and saunas"),
		store("Sauna Deals", "saunadeals.com", "Infrared sauna kits"),
	},
	"kayaks": {
		store("Austin Kayak", "austinkayak.com", "Kayaks, paddles and fishing gear"),
		store("Paddle Shack", "paddleshack.com", "Fishing and touring kayaks"),
		store("Kayak Fishing Store", "kayakfishingstore.com", "Pedal drive fishing kayaks"),
		store("Outdoor Play", "outdoorplay.com", "Kayaks and paddle sports"),
	},
	"telescopes": {
		store("High Point Scientific", "highpointscientific.com", "Telescopes, mounts and astrophotography"),
		store("Agena AstroProducts", "agenaastro.com", "Telescopes and astronomy accessories"),
		store("OPT Telescopes", "optcorp.com", "Telescopes and astro imaging"),
		store("Astronomics", "astronomics.com", "Telescopes and binoculars"),
	},
	"espresso machines": {
		store("Whole Latte Love", "wholelattelove.com", "Espresso machines and grinders"),
		store("Seattle Coffee Gear", "seattlecoffeegear.com", "Espresso machines and coffee gear"),
		store("Clive Coffee", "clivecoffee.com", "Prosumer espresso machines"),
		store("Espresso Outlet", "espressooutlet.net", "Espresso machines and parts"),
	},
	"electric bikes": {
		store("Electric Bike Report Shop", "ebikereportshop.com", "Electric bikes from multiple brands"),
		store("Propel Electric Bikes", "propelbikes.com", "Electric bikes and cargo bikes"),
		store("Electric Bike Company", "electricbikecompany.com", "Custom electric cruisers"),
		store("Pedego Online", "pedegoelectricbikes.com", "Electric bikes"),
	},
	"golf simulators": {
		store("Rain or Shine Golf", "rainorshinegolf.com", "Golf simulators and launch monitors"),
		store("Shop Indoor Golf", "shopindoorgolf.com", "Golf simulator packages"),
		store("Carl's Place", "carlofet.com", "Golf simulator enclosures and nets"),
		store("Golf Simulator Shop", "golfsimulatorshop.com", "Launch monitors and simulator bays"),
	},
	"fireplaces": {
		store("Fireplace Outlet", "fireplaceoutlet.com", "Gas, wood and electric fireplaces"),
		store("eFireplaceStore", "efireplacestore.com", "Fireplaces, inserts and stoves"),
		store("Northline Express", "northlineexpress.com", "Stoves and fireplace accessories"),
		store("Electric Fireplaces Direct", "electricfireplacesdirect.com", "Electric fireplaces"),
	},
	"outdoor kitchens": {
		store("BBQGuys", "bbqguys.com", "Grills, outdoor kitchens and patio furniture"),
		store("Outdoor Kitchen Outlet", "outdoorkitchenoutlet.com", "Modular outdoor kitchens"),
		store("Grill Parts Pros", "grillpartspros.com", "Built-in grills and islands"),
		store("Barbeques Galore", "bbqgalore.com", "Grills and outdoor kitchen islands"),
	},
}

// Default builds the catalog from the curated seed data
func Default() *Catalog {
	c, err := New(Seeds, ExcludedRetailers, DefaultNiche)
	if err != nil {
		panic(err)
	}
	return c
}
