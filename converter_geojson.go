package xodrqc

import (
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// PrepareGeoJSONFindings returns a FeatureCollection with one point feature
// per finding that carries an inertial location. Findings without map
// coordinates are left out.
func PrepareGeoJSONFindings(result *Result) *geojson.FeatureCollection {
	collection := geojson.NewFeatureCollection()
	for _, outcome := range result.Outcomes() {
		for _, issue := range outcome.Issues() {
			if issue.Inertial == nil {
				continue
			}
			feature := geojson.NewPointFeature([]float64{issue.Inertial.X, issue.Inertial.Y, issue.Inertial.Z})
			feature.SetProperty("checker_id", outcome.CheckerID)
			feature.SetProperty("rule_uid", issue.RuleUID)
			feature.SetProperty("severity", issue.Severity.String())
			feature.SetProperty("description", issue.Description)
			collection.AddFeature(feature)
		}
	}
	return collection
}

// SaveGeoJSONFindings writes the located findings of a run as a GeoJSON file
func SaveGeoJSONFindings(result *Result, fileName string) error {
	data, err := PrepareGeoJSONFindings(result).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't convert findings to geojson format")
	}
	if err := os.WriteFile(fileName, data, 0644); err != nil {
		return errors.Wrap(err, "Can't write geojson file")
	}
	return nil
}
