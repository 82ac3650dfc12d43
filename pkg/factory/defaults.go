package factory

import "github.com/aretw0/pageforge/pkg/domain"

var defaultContent = map[domain.Kind]string{
	domain.KindHeading1:  "Заголовок H1",
	domain.KindHeading2:  "Заголовок H2",
	domain.KindHeading3:  "Заголовок H3",
	domain.KindParagraph: "Это новый параграф. Вы можете изменить этот текст.",
	domain.KindButton:    "Нажми меня",
}

const font = "Inter, sans-serif"

func defaultStyle(kind domain.Kind) domain.Style {
	switch kind {
	case domain.KindHeader:
		return bar(domain.Style{
			"backgroundColor": "hsl(var(--card))",
			"color":           "hsl(var(--muted-foreground))",
			"minHeight":       "80px",
			"borderBottom":    "1px solid hsl(var(--border))",
		})
	case domain.KindFooter:
		return bar(domain.Style{
			"backgroundColor": "#222222",
			"color":           "hsl(var(--primary-foreground))",
			"minHeight":       "60px",
			"borderTop":       "1px solid hsl(var(--border))",
		})
	case domain.KindHeading1:
		return heading("32px", "10px 0")
	case domain.KindHeading2:
		return heading("28px", "8px 0")
	case domain.KindHeading3:
		return heading("24px", "6px 0")
	case domain.KindParagraph:
		return text(domain.Style{"fontSize": "16px", "margin": "10px 0"})
	case domain.KindButton:
		return domain.Style{
			"backgroundColor": "hsl(var(--primary))",
			"color":           "hsl(var(--primary-foreground))",
			"padding":         "10px 15px",
			"fontSize":        "16px",
			"fontFamily":      font,
			"width":           "auto",
			"height":          "auto",
			"border":          "none",
			"cursor":          "pointer",
			"margin":          "10px 0",
		}
	case domain.KindImage:
		return domain.Style{
			"width":     "300px",
			"height":    "auto",
			"objectFit": "cover",
			"display":   "block",
			"margin":    "10px 0",
		}
	case domain.KindContainer:
		return domain.Style{
			"padding":         "20px",
			"border":          "1px dashed hsl(var(--border))",
			"backgroundColor": "hsl(var(--card))",
			"minHeight":       "100px",
			"width":           "100%",
			"margin":          "10px 0",
		}
	}
	return domain.Style{}
}

func layoutStyle() domain.Style {
	return domain.Style{
		"display":         "flex",
		"flexDirection":   "row",
		"alignItems":      "stretch",
		"gap":             "10px",
		"padding":         "10px",
		"border":          "1px dashed hsl(var(--accent))",
		"minHeight":       "120px",
		"width":           "100%",
		"margin":          "10px 0",
		"backgroundColor": "transparent",
	}
}

func bar(s domain.Style) domain.Style {
	return domain.Style{
		"padding":        "20px",
		"width":          "100%",
		"display":        "flex",
		"alignItems":     "center",
		"justifyContent": "center",
		"fontFamily":     font,
	}.Merge(s)
}

func heading(size, margin string) domain.Style {
	return text(domain.Style{"fontSize": size, "fontWeight": "bold", "margin": margin})
}

func text(s domain.Style) domain.Style {
	return domain.Style{
		"display":    "block",
		"textAlign":  "left",
		"color":      "hsl(var(--foreground))",
		"fontFamily": font,
		"width":      "auto",
		"height":     "auto",
	}.Merge(s)
}
