package catalog

import "strings"

// GenericPlaceholder se usa cuando no hay imagen ni placeholder de categoría
const GenericPlaceholder = "https://images.unsplash.com/photo-1532453288672-3a27e9be9efd?w=400&h=300&fit=crop"

// Placeholders por nombre de categoría
var categoryPlaceholders = map[string]string{
	"Muebles Ecológicos":     "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=400&h=300&fit=crop",
	"Accesorios Sostenibles": "https://images.unsplash.com/photo-1542838132-92c53300491e?w=400&h=300&fit=crop",
	"Hogar Eco-Friendly":     "https://images.unsplash.com/photo-1484101403633-562f891dc89a?w=400&h=300&fit=crop",
}

// ImageURL resuelve la imagen de un producto: URL explícita, luego la URL
// derivada del nombre de archivo, luego el placeholder de la categoría y
// por último el placeholder genérico.
func ImageURL(apiBase, explicitURL, filename, category string) string {
	if u := strings.TrimSpace(explicitURL); u != "" {
		return u
	}
	if f := strings.TrimSpace(filename); f != "" {
		return strings.TrimRight(apiBase, "/") + "/images/" + strings.TrimLeft(f, "/")
	}
	if p, ok := categoryPlaceholders[category]; ok {
		return p
	}
	return GenericPlaceholder
}
