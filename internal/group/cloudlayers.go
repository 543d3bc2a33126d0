package group

import "metartaf/internal/units"

// CloudLayer is one amount+height pair within a CloudLayersGroup.
type CloudLayer struct {
	Amount CloudAmount
	Height units.Distance
}

// CloudLayersGroup is a remark-section "AAAnnnAAAnnn..." sequence of
// cloud layers, a detailed alternative to the body's single-layer
// CloudGroup tokens used by some national variants.
type CloudLayersGroup struct {
	Layers []CloudLayer
}

func (CloudLayersGroup) Kind() Kind { return KindCloudLayers }

func (g CloudLayersGroup) IsValid() bool {
	return len(g.Layers) > 0
}

// ParseCloudLayersRemark recognizes a concatenated run of
// "AAAnnn" layer entries in remarks.
func ParseCloudLayersRemark(token string, part ReportPart) (Group, bool) {
	if part != PartRemarks {
		return CloudLayersGroup{}, false
	}
	var layers []CloudLayer
	body := token
	for len(body) > 0 {
		matched := false
		for code, amount := range cloudLayerAmounts {
			if code == "///" || len(body) < len(code)+3 || body[:len(code)] != code {
				continue
			}
			height, ok := units.ParseDistanceHeight(body[len(code) : len(code)+3])
			if !ok {
				continue
			}
			layers = append(layers, CloudLayer{Amount: amount, Height: height})
			body = body[len(code)+3:]
			matched = true
			break
		}
		if !matched {
			return CloudLayersGroup{}, false
		}
	}
	if len(layers) == 0 {
		return CloudLayersGroup{}, false
	}
	return CloudLayersGroup{Layers: layers}, true
}
