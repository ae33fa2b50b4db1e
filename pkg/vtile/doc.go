// Package vtile renders Mapbox vector tiles into draw intents.
//
// A tile is decoded, matched against a Mapbox GL style and turned into an
// ordered list of intents: filled and stroked paths in style layer order,
// followed by the labels that survived collision detection. Rasterising
// the intents is left to the caller.
//
// # Basic Usage
//
//	s, err := vtile.LoadStyleFile("style.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r := vtile.NewRenderer(s, vtile.DefaultOptions())
//	res, err := r.Render(tileBytes, 14)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, in := range res.Intents {
//	    switch in.Kind {
//	    case vtile.KindFill, vtile.KindLine:
//	        drawPath(in.Path)
//	    case vtile.KindLabel:
//	        drawLabel(in.Label)
//	    }
//	}
//
// # Fonts and Icons
//
// Labels carry a resolved Font and, for icon-image layers, an Icon. Both
// come from collaborators passed in Options:
//
//	fonts := vtile.NewFontDir("/usr/share/fonts", nil)
//	sprites, err := vtile.LoadSpritesFile("sprite.json", "sprite.png", vtile.DefaultSpriteOptions())
//
//	opts := vtile.DefaultOptions()
//	opts.Fonts = fonts
//	opts.Sprites = sprites
//
// The sprite image is decoded on the first icon lookup. If that fails the
// atlas stays unavailable for the life of the Sprites value; icons are
// simply omitted.
//
// # Errors
//
// Malformed tile data fails the whole decode with a *DecodeError. A
// malformed feature is skipped. Problems inside a style layer are logged
// and the construct falls back to its default; only unreadable JSON or a
// missing layers array is a *StyleError.
package vtile
