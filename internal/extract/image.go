package extract

import (
	"errors"
	"log"

	"pdfcompare/internal/domain"
	"pdfcompare/internal/port"
)

// ImageIdentityPrefix prefixes every image content hash.
const ImageIdentityPrefix = "image:"

var errNoPayload = errors.New("no image payload")

var unitSquare = [4]domain.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}

// ExtractImages converts image events into regions, in paint order. Images
// whose payload cannot be read are logged and skipped.
func ExtractImages(events []port.ImageEvent) []domain.ImageRegion {
	var regions []domain.ImageRegion
	for _, ev := range events {
		region, err := imageRegion(ev)
		if err != nil {
			log.Printf("extract.ExtractImages: skipping image %q: %v", ev.Name, err)
			continue
		}
		regions = append(regions, region)
	}
	return regions
}

func imageRegion(ev port.ImageEvent) (domain.ImageRegion, error) {
	if ev.Payload == nil {
		return domain.ImageRegion{}, errNoPayload
	}
	data, err := ev.Payload()
	if err != nil {
		return domain.ImageRegion{}, err
	}
	if data == nil {
		return domain.ImageRegion{}, errNoPayload
	}

	var corners [4]domain.Point
	for i, p := range unitSquare {
		corners[i] = ev.Transform.Apply(p)
	}
	return domain.ImageRegion{
		ContentID: ImageIdentityPrefix + ContentHash(data),
		Box:       domain.BoundingRectangle(corners[:]...),
	}, nil
}
