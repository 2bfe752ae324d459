// Package graph defines the GraphQL schema of the genre catalog and binds
// its fields to the catalog service.
package graph

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/genre-guide/graphql-api/internal/catalog"
	"github.com/genre-guide/graphql-api/internal/domain"
)

const isoDate = "2006-01-02"

// dateType serializes calendar dates without a time component.
var dateType = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Date",
	Description: "An ISO 8601 calendar date, like 2018-04-20",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case time.Time:
			return v.Format(isoDate)
		case *time.Time:
			return v.Format(isoDate)
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		return parseDate(s)
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		if s, ok := valueAST.(*ast.StringValue); ok {
			return parseDate(s.Value)
		}
		return nil
	},
})

func parseDate(s string) interface{} {
	if t, err := time.Parse(isoDate, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return nil
}

type builder struct {
	svc *catalog.Service

	subgenre *graphql.Object
	operator *graphql.Object
	group    *graphql.Object
	track    *graphql.Object

	subgenreOrOperator        *graphql.Union
	subgenreOrOperatorOrGroup *graphql.Union
}

// NewSchema builds the catalog schema over the given service.
func NewSchema(svc *catalog.Service) (graphql.Schema, error) {
	b := &builder{svc: svc}

	b.buildSubgenreType()
	b.buildOperatorType()
	b.buildGroupType()
	b.buildUnions()
	b.finishSubgenreType()
	b.finishGroupType()
	b.buildTrackType()

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: b.buildQueryType(),
	})
}

func (b *builder) buildSubgenreType() {
	b.subgenre = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Subgenre",
		Description: "A subgenre, as understood on the Genre Sheet",
		Fields: graphql.Fields{
			"names": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
				Description: `The primary name of the subgenre, e.x. "Brostep", followed by alternative names, e.x. {"DnB", "D&B"} for Drum & Bass`,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.Subgenre).Names, nil
				},
			},
			"textColor": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.String),
				Description: "The text color this subgenre uses on the Genre Sheet, in hex, e.x. '#000000' for Ambient",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.Colors().Text(p.Context, p.Source.(*domain.Subgenre))
				},
			},
			"backgroundColor": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.String),
				Description: "The background color this subgenre uses on the Genre Sheet, in hex, e.x. '#009600' for Hardcore",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.Colors().Background(p.Context, p.Source.(*domain.Subgenre))
				},
			},
			"description": &graphql.Field{
				Type:        graphql.String,
				Description: "A paragraph describing this subgenre, or null if none has been written yet",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if d := p.Source.(*domain.Subgenre).Description; d != "" {
						return d, nil
					}
					return nil, nil
				},
			},
		},
	})
}

// finishSubgenreType adds the self-referential fields, which need the type
// to already exist.
func (b *builder) finishSubgenreType() {
	resolveOrigins := func(p graphql.ResolveParams) (interface{}, error) {
		return b.lookupEach(p, p.Source.(*domain.Subgenre).Origins)
	}

	b.subgenre.AddFieldConfig("category", &graphql.Field{
		Type:        graphql.NewNonNull(b.subgenre),
		Description: "The genre category that this subgenre belongs to, which is where its color comes from, e.x. Vaporwave for Vaportrap, Future Bass for Future Bass",
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return b.svc.Subgenres().ByPrimaryName(p.Context, p.Source.(*domain.Subgenre).Category, true)
		},
	})
	b.subgenre.AddFieldConfig("parents", &graphql.Field{
		Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.subgenre))),
		Description: "The list of subgenres that this subgenre comes *directly* from, e.x. {Detroit Techno,} for Big Room Techno, {UK Hip Hop, 2-Step Garage} for Grime",
		Resolve:     resolveOrigins,
	})
	b.subgenre.AddFieldConfig("origins", &graphql.Field{
		Type:              graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.subgenre))),
		Description:       "The list of subgenres that this subgenre comes *directly* from, e.x. {Detroit Techno,} for Big Room Techno, {UK Hip Hop, 2-Step Garage} for Grime",
		DeprecationReason: "Use parents instead because it's a more specific name",
		Resolve:           resolveOrigins,
	})
	b.subgenre.AddFieldConfig("children", &graphql.Field{
		Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.subgenre))),
		Description: "The list of subgenres that originate *directly* from this subgenre, e.x. {Deathstep, Drumstep} for Dubstep, {} for Footwork",
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return b.lookupEach(p, p.Source.(*domain.Subgenre).Children)
		},
	})
}

// lookupEach resolves a list of primary names to full records.
func (b *builder) lookupEach(p graphql.ResolveParams, names []string) (interface{}, error) {
	subgenres := make([]*domain.Subgenre, 0, len(names))
	for _, name := range names {
		subgenre, err := b.svc.Subgenres().ByPrimaryName(p.Context, name, true)
		if err != nil {
			return nil, err
		}
		subgenres = append(subgenres, subgenre)
	}
	return subgenres, nil
}

func (b *builder) buildOperatorType() {
	b.operator = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Operator",
		Description: "An operator or divider between the multiple subgenres of a track",
		Fields: graphql.Fields{
			"symbol": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.String),
				Description: "A one-character symbol for the operator",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Operator).Symbol, nil
				},
			},
			"name": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.String),
				Description: "A short, descriptive name for the operator",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Operator).Name, nil
				},
			},
		},
	})
}

func (b *builder) buildGroupType() {
	b.group = graphql.NewObject(graphql.ObjectConfig{
		Name:        "SubgenreGroup",
		Description: "A (recursive) group of subgenres and operators",
		Fields:      graphql.Fields{},
	})
}

// finishGroupType adds the elements field, which needs the unions.
func (b *builder) finishGroupType() {
	b.group.AddFieldConfig("elements", &graphql.Field{
		Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.subgenreOrOperatorOrGroup))),
		Description: "The elements of this group",
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			group := p.Source.(*domain.SubgenreGroup)
			if group.Elements == nil {
				return []domain.Element{}, nil
			}
			return group.Elements, nil
		},
	})
}

func (b *builder) buildUnions() {
	resolveType := func(p graphql.ResolveTypeParams) *graphql.Object {
		switch p.Value.(type) {
		case *domain.Subgenre:
			return b.subgenre
		case domain.Operator:
			return b.operator
		case *domain.SubgenreGroup:
			return b.group
		}
		return nil
	}

	b.subgenreOrOperator = graphql.NewUnion(graphql.UnionConfig{
		Name:        "SubgenreOrOperator",
		Types:       []*graphql.Object{b.subgenre, b.operator},
		ResolveType: resolveType,
	})
	b.subgenreOrOperatorOrGroup = graphql.NewUnion(graphql.UnionConfig{
		Name:        "SubgenreOrOperatorOrGroup",
		Types:       []*graphql.Object{b.subgenre, b.operator, b.group},
		ResolveType: resolveType,
	})
}

func (b *builder) buildTrackType() {
	resolveReleaseDate := func(p graphql.ResolveParams) (interface{}, error) {
		return p.Source.(*domain.Track).ReleaseDate, nil
	}

	b.track = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Track",
		Description: "A track / song, as may appear on the Genre Sheet",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.ID),
				Description: "The unique ID associated with this track, for lookup purposes",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					track := p.Source.(*domain.Track)
					return domain.TrackID(track.Artist, track.Title, track.ReleaseDate), nil
				},
			},
			"name": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.String),
				Description: "The name of the track",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.Track).Title, nil
				},
			},
			"artist": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.String),
				Description: "The artist(s) of the track",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.Track).Artist, nil
				},
			},
			"recordLabel": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.String),
				Description: "The record label(s) or copyright owner(s) who released and/or own the rights to the track",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.Track).RecordLabel, nil
				},
			},
			"releaseDate": &graphql.Field{
				Type:        graphql.NewNonNull(dateType),
				Description: "The date the track was released",
				Resolve:     resolveReleaseDate,
			},
			"date": &graphql.Field{
				Type:              graphql.NewNonNull(dateType),
				Description:       "The date the track was released",
				DeprecationReason: "Use releaseDate instead because it's a more specific name",
				Resolve:           resolveReleaseDate,
			},
			"subgenresNested": &graphql.Field{
				Type:        graphql.NewNonNull(b.group),
				Description: "The subgenres and dividers that make up this song, but recursive and hard to work with (though fully accurate and reflective of entries on the Genre Sheet)",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.SubgenresNested(p.Context, p.Source.(*domain.Track)), nil
				},
			},
			"subgenresFlat": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.subgenreOrOperator))),
				Description: "The subgenres and dividers that make up this song, flattened out for simplicity (but with loss of information)",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.SubgenresFlat(p.Context, p.Source.(*domain.Track)), nil
				},
			},
			"image": &graphql.Field{
				Type:        graphql.String,
				Description: "The link to the cover artwork for the track, or null if none is known (currently all tracks return null)",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return nil, nil
				},
			},
		},
	})
}

func (b *builder) buildQueryType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"subgenre": &graphql.Field{
				Type:        b.subgenre,
				Description: "Retrieve a subgenre by any of its names",
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.Subgenres().ByAnyName(p.Context, p.Args["name"].(string), true)
				},
			},
			"allSubgenres": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.subgenre))),
				Description: "Retrieve all subgenres from the sheet (database)",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.Subgenres().All(p.Context, true)
				},
			},
			"allCategories": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.subgenre))),
				Description: "Retrieve all categories (genres) from the sheet (database)",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.Subgenres().Categories(p.Context, true)
				},
			},
			"track": &graphql.Field{
				Type:        b.track,
				Description: "Retrieve a particular track from the sheet (database) by its ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.Track(p.Context, p.Args["id"].(string))
				},
			},
			"tracks": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.track))),
				Description: "Retrieve a range of tracks from the sheet (database)",
				Args: graphql.FieldConfigArgument{
					"beforeDate": &graphql.ArgumentConfig{
						Type:        dateType,
						Description: "The newest date of songs to retrieve (inclusive)",
					},
					"afterDate": &graphql.ArgumentConfig{
						Type:        dateType,
						Description: "The oldest date of songs to retrieve (inclusive)",
					},
					"beforeID": &graphql.ArgumentConfig{
						Type:        graphql.ID,
						Description: "The newest song to retrieve (exclusive) by its ID. Do not set any other parameter than `limit` when using this",
					},
					"afterID": &graphql.ArgumentConfig{
						Type:        graphql.ID,
						Description: "The oldest song to retrieve (exclusive) by its ID. Do not set any other parameter than `limit` when using this",
					},
					"newestFirst": &graphql.ArgumentConfig{
						Type:         graphql.Boolean,
						DefaultValue: true,
						Description:  "Whether to sort the returned tracks from newest to oldest, or oldest to newest",
					},
					"limit": &graphql.ArgumentConfig{
						Type:         graphql.Int,
						DefaultValue: catalog.DefaultTrackLimit,
						Description:  "The maximum number of tracks to return",
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := catalog.TrackFilter{
						NewestFirst: true,
						Limit:       catalog.DefaultTrackLimit,
					}
					if v, ok := p.Args["beforeDate"].(time.Time); ok {
						filter.BeforeDate = &v
					}
					if v, ok := p.Args["afterDate"].(time.Time); ok {
						filter.AfterDate = &v
					}
					if v, ok := p.Args["beforeID"].(string); ok {
						filter.BeforeID = v
					}
					if v, ok := p.Args["afterID"].(string); ok {
						filter.AfterID = v
					}
					if v, ok := p.Args["newestFirst"].(bool); ok {
						filter.NewestFirst = v
					}
					if v, ok := p.Args["limit"].(int); ok {
						filter.Limit = v
					}
					return b.svc.ListTracks(p.Context, filter)
				},
			},
		},
	})
}
