package diagram

import "fmt"

// C4-PlantUML macro includes, one per diagram level.
const (
	headerContext   = "!include https://raw.githubusercontent.com/plantuml-stdlib/C4-PlantUML/master/C4_Context.puml"
	headerContainer = "!include https://raw.githubusercontent.com/plantuml-stdlib/C4-PlantUML/master/C4_Container.puml"
	headerComponent = "!include https://raw.githubusercontent.com/plantuml-stdlib/C4-PlantUML/master/C4_Component.puml"
)

// RenderContextDiagram wraps the context notes in a C1 PlantUML scaffold.
// Note text is inserted verbatim; the generated file is a starting point
// the user edits after generation.
func RenderContextDiagram(notes string) string {
	return fmt.Sprintf(`@startuml C1_Context
%s
title C1: System Context
' Auto-generated summary bullets in note
note as N1
%s
end note
@enduml
`, headerContext, notes)
}

// RenderContainerDiagram wraps the container notes in a C2 PlantUML scaffold.
func RenderContainerDiagram(notes string) string {
	return fmt.Sprintf(`@startuml C2_Containers
%s
title C2: Containers
note as N2
%s
end note
@enduml
`, headerContainer, notes)
}

// RenderComponentDiagram wraps the component notes in a C3 PlantUML scaffold.
func RenderComponentDiagram(notes string) string {
	return fmt.Sprintf(`@startuml C3_Components
%s
title C3: Components
note as N3
%s
end note
@enduml
`, headerComponent, notes)
}

// RenderCodeNotesDiagram wraps the code-level notes in a C4 scaffold.
// There is no macro include at this level; the notes stand alone.
func RenderCodeNotesDiagram(notes string) string {
	return fmt.Sprintf(`@startuml C4_Code
title C4: Code-Level Notes
note as N4
%s
end note
@enduml
`, notes)
}
