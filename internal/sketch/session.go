package sketch

import (
	"context"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
)

// Tool is the active editing mode of a sketch session.
type Tool uint8

const (
	ToolSelect Tool = iota
	ToolAddRoom
	ToolAddDoor
	ToolAddWindow
	ToolAddDamage
	ToolPan
)

var toolNames = map[Tool]string{
	ToolSelect:    "select",
	ToolAddRoom:   "add_room",
	ToolAddDoor:   "add_door",
	ToolAddWindow: "add_window",
	ToolAddDamage: "add_damage",
	ToolPan:       "pan",
}

func (t Tool) String() string { return toolNames[t] }

// ParseTool maps the wire name of a tool to its value.
func ParseTool(s string) (Tool, bool) {
	for t, name := range toolNames {
		if name == s {
			return t, true
		}
	}
	return ToolSelect, false
}

// HandleID identifies one of the eight resize handles around a
// selected room, clockwise from the top-left corner.
type HandleID uint8

const (
	HandleNW HandleID = iota
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
)

// handleSigns maps a handle to the growth direction of each axis:
// dragging the south-east handle right and down grows both
// dimensions, the north handle only moves the top edge.
var handleSigns = [8]Point{
	{-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0},
}

func handlePoints(r Rect) [8]Point {
	return [8]Point{
		{r.X, r.Y},
		{r.X + r.W/2, r.Y},
		{r.Right(), r.Y},
		{r.Right(), r.Y + r.H/2},
		{r.Right(), r.Bottom()},
		{r.X + r.W/2, r.Bottom()},
		{r.X, r.Bottom()},
		{r.X, r.Y + r.H/2},
	}
}

const (
	minRoomFt = 5.0 // smallest dimension a resize may reach

	minZoom = 0.25
	maxZoom = 4.0

	defaultNewRoomFt    = 12.0
	defaultDoorWidthFt  = 3.0
	defaultDoorHeight   = 6.8
	defaultWindowWidth  = 3.0
	defaultWindowHeight = 4.0
)

type hitKind uint8

const (
	hitNone hitKind = iota
	hitHandle
	hitOpening
	hitWall
	hitRoom
)

type hitResult struct {
	kind      hitKind
	roomID    string
	rect      Rect
	handle    HandleID
	wall      WallHit
	openingID string
}

type gestureKind uint8

const (
	gestureNone gestureKind = iota
	gestureResize
	gestureOpeningDrag
	gesturePan
)

type gestureState struct {
	kind gestureKind

	// resize
	roomID        string
	handle        HandleID
	start         Point
	startLength   float64
	startWidth    float64
	startPpf      float64
	pendingLength float64
	pendingWidth  float64
	moved         bool

	// opening drag
	openingID   string
	wall        Direction
	startOffset float64
	entry       *moveOpeningEntry

	// pan, in screen coordinates
	startScreen Point
	startView   Point
}

// overlay carries in-flight gesture values keyed by entity id. They
// are merged over the loaded entities whenever plan geometry is
// rebuilt and removed when the owning gesture ends, so a background
// refresh racing the gesture cannot snap the element back to a stale
// stored value.
type overlay struct {
	roomDims      map[string][2]float64 // room id → pending {length, width} in feet
	openingOffset map[string]float64    // opening id → pending offset along its wall
}

// PendingRoom is a staged ghost room waiting for the client to
// confirm a name and dimensions. Nothing persists until confirmation.
type PendingRoom struct {
	AnchorRoomID string    `json:"anchorRoomId"`
	Wall         Direction `json:"wall"`
	LengthFt     float64   `json:"lengthFt"`
	WidthFt      float64   `json:"widthFt"`
	Rect         Rect      `json:"rect"`
}

// EditSession drives interactive sketch editing for one inspection.
// It is confined to a single goroutine (the socket run loop); all
// mutation goes through the Persister and clients are resynced from a
// fresh state load afterwards. The session's own state copy feeds hit
// testing and gesture math, with the overrides overlay merged on top
// at render time.
type EditSession struct {
	inspectionID string
	store        Persister
	log          *zap.SugaredLogger
	params       Params

	state     State
	overrides overlay
	plan      Plan
	planRooms []PlanRoom
	rects     map[string]Rect
	ppfByRoom map[string]float64

	tool         Tool
	selectedRoom string
	zoom         float64
	viewOffset   Point

	history historyStack
	gesture *gestureState
	pending *PendingRoom
}

// NewEditSession starts an empty session; call SetState with loaded
// inspection data before dispatching pointer events.
func NewEditSession(inspectionID string, store Persister, log *zap.SugaredLogger, params Params) *EditSession {
	return &EditSession{
		inspectionID: inspectionID,
		store:        store,
		log:          log,
		params:       params,
		zoom:         1,
		rects:        map[string]Rect{},
		ppfByRoom:    map[string]float64{},
		overrides: overlay{
			roomDims:      map[string][2]float64{},
			openingOffset: map[string]float64{},
		},
	}
}

// SetState replaces the session's working copy and rebuilds plan
// geometry. Undo history survives a reload; an active gesture whose
// target vanished is dropped.
func (s *EditSession) SetState(st State) {
	s.state = st
	s.rebuild()

	if s.selectedRoom != "" {
		if _, ok := s.rects[s.selectedRoom]; !ok {
			s.selectedRoom = ""
		}
	}
	if g := s.gesture; g != nil && g.roomID != "" {
		if _, ok := s.rects[g.roomID]; !ok {
			delete(s.overrides.roomDims, g.roomID)
			delete(s.overrides.openingOffset, g.openingID)
			s.gesture = nil
		}
	}
}

func (s *EditSession) rebuild() {
	s.plan = BuildPlan(s.inspectionID, s.renderState(), s.params)
	s.planRooms = s.planRooms[:0]
	s.rects = make(map[string]Rect, len(s.state.Rooms))
	s.ppfByRoom = make(map[string]float64, len(s.state.Rooms))

	for _, sp := range s.plan.Structures {
		for _, pr := range sp.Rooms {
			s.planRooms = append(s.planRooms, pr)
			s.rects[pr.RoomID] = pr.Rect

			var length float64
			if d, ok := s.overrides.roomDims[pr.RoomID]; ok {
				length = d[0]
			} else if r := s.roomByID(pr.RoomID); r != nil {
				if l, _, ok := r.Dims(); ok {
					length = l
				}
			}
			ppf := s.params.Scale
			if length > 0 {
				ppf = pr.Rect.W / length
			}
			s.ppfByRoom[pr.RoomID] = ppf
		}
	}
}

// renderState merges the override overlay over the loaded entities.
// Entities under an active gesture keep their in-flight values even
// when a refresh has just replaced the loaded state.
func (s *EditSession) renderState() State {
	if len(s.overrides.roomDims) == 0 && len(s.overrides.openingOffset) == 0 {
		return s.state
	}

	st := s.state
	if len(s.overrides.roomDims) > 0 {
		rooms := make([]models.Room, len(st.Rooms))
		copy(rooms, st.Rooms)
		for i := range rooms {
			if d, ok := s.overrides.roomDims[rooms[i].ID]; ok {
				length, width := d[0], d[1]
				rooms[i].LengthFt = &length
				rooms[i].WidthFt = &width
			}
		}
		st.Rooms = rooms
	}
	if len(s.overrides.openingOffset) > 0 {
		openings := make([]models.Opening, len(st.Openings))
		copy(openings, st.Openings)
		for i := range openings {
			if off, ok := s.overrides.openingOffset[openings[i].ID]; ok {
				openings[i].PositionOnWall = off
			}
		}
		st.Openings = openings
	}
	return st
}

func (s *EditSession) roomByID(id string) *models.Room {
	for i := range s.state.Rooms {
		if s.state.Rooms[i].ID == id {
			return &s.state.Rooms[i]
		}
	}
	return nil
}

func (s *EditSession) openingByID(id string) *models.Opening {
	for i := range s.state.Openings {
		if s.state.Openings[i].ID == id {
			return &s.state.Openings[i]
		}
	}
	return nil
}

func (s *EditSession) annotationByID(id string) *models.Annotation {
	for i := range s.state.Annotations {
		if s.state.Annotations[i].ID == id {
			return &s.state.Annotations[i]
		}
	}
	return nil
}

// Plan returns the current drawable plan.
func (s *EditSession) Plan() Plan { return s.plan }

// SelectedRoom returns the id of the selected room, empty for none.
func (s *EditSession) SelectedRoom() string { return s.selectedRoom }

// Pending returns the staged ghost room, nil when none.
func (s *EditSession) Pending() *PendingRoom { return s.pending }

// Tool returns the active tool.
func (s *EditSession) Tool() Tool { return s.tool }

// Zoom returns the current zoom factor.
func (s *EditSession) Zoom() float64 { return s.zoom }

// ViewOffset returns the current pan offset in screen pixels.
func (s *EditSession) ViewOffset() Point { return s.viewOffset }

// SetTool switches tools, finishing any in-flight gesture first so a
// half-done resize commits rather than dangling. It reports whether
// that commit changed persistent state.
func (s *EditSession) SetTool(ctx context.Context, t Tool) (bool, error) {
	mutated, err := s.endGesture(ctx)
	s.tool = t
	if t != ToolAddRoom {
		s.pending = nil
	}
	return mutated, err
}

// SetZoom clamps and applies the zoom factor.
func (s *EditSession) SetZoom(z float64) {
	if z < minZoom {
		z = minZoom
	}
	if z > maxZoom {
		z = maxZoom
	}
	s.zoom = z
}

// SelectRoom selects a room by id; unknown ids clear the selection.
func (s *EditSession) SelectRoom(id string) {
	if _, ok := s.rects[id]; ok {
		s.selectedRoom = id
	} else {
		s.selectedRoom = ""
	}
}

func (s *EditSession) screenToModel(p Point) Point {
	return Point{
		X: (p.X - s.viewOffset.X) / s.zoom,
		Y: (p.Y - s.viewOffset.Y) / s.zoom,
	}
}

type toolTarget struct {
	tool Tool
	kind hitKind
}

// pointerActions routes a pointer-down to its handler by (tool, hit)
// pair. Missing pairs are no-ops; pan never reaches the table.
var pointerActions = map[toolTarget]func(*EditSession, context.Context, Point, hitResult) (bool, error){
	{ToolSelect, hitHandle}:  (*EditSession).beginResize,
	{ToolSelect, hitOpening}: (*EditSession).beginOpeningDrag,
	{ToolSelect, hitWall}:    (*EditSession).selectHit,
	{ToolSelect, hitRoom}:    (*EditSession).selectHit,
	{ToolSelect, hitNone}:    (*EditSession).clearSelection,
	{ToolAddRoom, hitWall}:   (*EditSession).stagePendingRoom,
	{ToolAddDoor, hitWall}:   (*EditSession).placeDoor,
	{ToolAddWindow, hitWall}: (*EditSession).placeWindow,
	{ToolAddDamage, hitWall}: (*EditSession).placeDamage,
	{ToolAddDamage, hitRoom}: (*EditSession).placeDamage,
}

// PointerDown begins a gesture or places an element, depending on the
// active tool and what the pointer landed on. It reports whether
// persistent state changed.
func (s *EditSession) PointerDown(ctx context.Context, screen Point) (bool, error) {
	if s.tool == ToolPan {
		s.gesture = &gestureState{
			kind:        gesturePan,
			startScreen: screen,
			startView:   s.viewOffset,
		}
		return false, nil
	}

	model := s.screenToModel(screen)
	hit := s.hitTest(model)
	action, ok := pointerActions[toolTarget{s.tool, hit.kind}]
	if !ok {
		return false, nil
	}
	return action(s, ctx, model, hit)
}

// PointerMove advances the active gesture. Opening drags persist on
// every move so a concurrent viewer tracks the slide live.
func (s *EditSession) PointerMove(ctx context.Context, screen Point) (bool, error) {
	g := s.gesture
	if g == nil {
		return false, nil
	}

	switch g.kind {
	case gesturePan:
		s.viewOffset = Point{
			X: g.startView.X + screen.X - g.startScreen.X,
			Y: g.startView.Y + screen.Y - g.startScreen.Y,
		}
		return false, nil

	case gestureResize:
		model := s.screenToModel(screen)
		sign := handleSigns[g.handle]
		dxFt := (model.X - g.start.X) / g.startPpf
		dyFt := (model.Y - g.start.Y) / g.startPpf
		g.pendingLength = math.Max(minRoomFt, g.startLength+dxFt*sign.X)
		g.pendingWidth = math.Max(minRoomFt, g.startWidth+dyFt*sign.Y)
		g.moved = true
		s.overrides.roomDims[g.roomID] = [2]float64{g.pendingLength, g.pendingWidth}
		s.rebuild()
		return false, nil

	case gestureOpeningDrag:
		return s.dragOpening(ctx, s.screenToModel(screen))
	}
	return false, nil
}

// PointerUp ends the active gesture, committing a resize as a single
// history entry.
func (s *EditSession) PointerUp(ctx context.Context) (bool, error) {
	return s.endGesture(ctx)
}

// PointerCancel ends the gesture the same way PointerUp does. The
// mobile clients fire cancel when the OS steals the touch, and losing
// the resize the adjuster just made is worse than keeping it.
func (s *EditSession) PointerCancel(ctx context.Context) (bool, error) {
	return s.endGesture(ctx)
}

func (s *EditSession) endGesture(ctx context.Context) (bool, error) {
	g := s.gesture
	if g == nil {
		return false, nil
	}
	s.gesture = nil

	switch g.kind {
	case gestureResize:
		overridden := false
		if _, ok := s.overrides.roomDims[g.roomID]; ok {
			delete(s.overrides.roomDims, g.roomID)
			overridden = true
		}
		if !g.moved {
			return false, nil
		}
		newLength := round1(g.pendingLength)
		newWidth := round1(g.pendingWidth)
		if newLength == g.startLength && newWidth == g.startWidth {
			if overridden {
				s.rebuild()
			}
			return false, nil
		}
		// The gesture commits locally either way; a failed write is
		// surfaced to the caller but the drawn size is not rolled back.
		if r := s.roomByID(g.roomID); r != nil {
			r.LengthFt = &newLength
			r.WidthFt = &newWidth
		}
		s.history.push(&resizeEntry{
			roomID:    g.roomID,
			oldLength: g.startLength,
			oldWidth:  g.startWidth,
			newLength: newLength,
			newWidth:  newWidth,
		})
		s.rebuild()
		err := s.store.UpdateRoom(ctx, g.roomID, map[string]interface{}{
			"length_ft": newLength,
			"width_ft":  newWidth,
		})
		return err == nil, err

	case gestureOpeningDrag:
		if off, ok := s.overrides.openingOffset[g.openingID]; ok {
			delete(s.overrides.openingOffset, g.openingID)
			if op := s.openingByID(g.openingID); op != nil {
				op.PositionOnWall = off
			}
			s.rebuild()
		}
		return g.entry != nil, nil
	}
	return false, nil
}

func (s *EditSession) hitTest(model Point) hitResult {
	tol := s.params.Tolerance

	if s.tool == ToolSelect && s.selectedRoom != "" {
		if rect, ok := s.rects[s.selectedRoom]; ok {
			for i, hp := range handlePoints(rect) {
				if math.Abs(model.X-hp.X) <= tol && math.Abs(model.Y-hp.Y) <= tol {
					return hitResult{kind: hitHandle, roomID: s.selectedRoom, rect: rect, handle: HandleID(i)}
				}
			}
		}
	}

	if s.tool == ToolSelect {
		for _, pr := range s.planRooms {
			for _, sym := range pr.Openings {
				if distToSegment(model, sym.GapStart, sym.GapEnd) <= tol {
					return hitResult{
						kind:      hitOpening,
						roomID:    pr.RoomID,
						rect:      pr.Rect,
						openingID: sym.OpeningID,
						wall:      WallHit{Wall: sym.Wall},
					}
				}
			}
		}
	}

	for _, pr := range s.planRooms {
		if wh, ok := HitTestWall(pr.Rect, model, tol); ok {
			return hitResult{kind: hitWall, roomID: pr.RoomID, rect: pr.Rect, wall: wh}
		}
	}
	for _, pr := range s.planRooms {
		if pr.Rect.Contains(model) {
			return hitResult{kind: hitRoom, roomID: pr.RoomID, rect: pr.Rect}
		}
	}
	return hitResult{kind: hitNone}
}

func (s *EditSession) selectHit(_ context.Context, _ Point, hit hitResult) (bool, error) {
	s.selectedRoom = hit.roomID
	return false, nil
}

func (s *EditSession) clearSelection(_ context.Context, _ Point, _ hitResult) (bool, error) {
	s.selectedRoom = ""
	return false, nil
}

func (s *EditSession) beginResize(_ context.Context, model Point, hit hitResult) (bool, error) {
	length, width := s.drawnDims(hit.roomID, hit.rect)
	s.gesture = &gestureState{
		kind:          gestureResize,
		roomID:        hit.roomID,
		handle:        hit.handle,
		start:         model,
		startLength:   length,
		startWidth:    width,
		startPpf:      s.ppfByRoom[hit.roomID],
		pendingLength: length,
		pendingWidth:  width,
	}
	return false, nil
}

// drawnDims returns the room's dimensions in feet, deriving them from
// the drawn footprint when the room was never measured so a resize
// assigns real numbers.
func (s *EditSession) drawnDims(roomID string, rect Rect) (length, width float64) {
	if r := s.roomByID(roomID); r != nil {
		if l, w, ok := r.Dims(); ok {
			return l, w
		}
	}
	ppf := s.ppfByRoom[roomID]
	if ppf <= 0 {
		ppf = s.params.Scale
	}
	return round1(rect.W / ppf), round1(rect.H / ppf)
}

func (s *EditSession) beginOpeningDrag(_ context.Context, _ Point, hit hitResult) (bool, error) {
	op := s.openingByID(hit.openingID)
	if op == nil {
		return false, nil
	}
	s.gesture = &gestureState{
		kind:        gestureOpeningDrag,
		roomID:      hit.roomID,
		openingID:   hit.openingID,
		wall:        hit.wall.Wall,
		startOffset: op.PositionOnWall,
	}
	return false, nil
}

func (s *EditSession) dragOpening(ctx context.Context, model Point) (bool, error) {
	g := s.gesture
	rect, ok := s.rects[g.roomID]
	if !ok {
		delete(s.overrides.openingOffset, g.openingID)
		s.gesture = nil
		return false, nil
	}

	from, to := rect.Wall(g.wall)
	wallLen := rect.WallLength(g.wall)
	if wallLen <= 0 {
		return false, nil
	}
	t := ((model.X-from.X)*(to.X-from.X) + (model.Y-from.Y)*(to.Y-from.Y)) / (wallLen * wallLen)
	off := round2(clamp01(t))

	op := s.openingByID(g.openingID)
	if op == nil {
		return false, nil
	}
	cur := op.PositionOnWall
	if v, ok := s.overrides.openingOffset[g.openingID]; ok {
		cur = v
	}
	if cur == off {
		return false, nil
	}

	err := s.store.UpdateOpening(ctx, g.openingID, map[string]interface{}{
		"position_on_wall": off,
	})
	if err != nil {
		return false, err
	}

	// one history entry per drag, updated in place as the slide goes on
	if g.entry == nil {
		g.entry = &moveOpeningEntry{openingID: g.openingID, oldOffset: g.startOffset, newOffset: off}
		s.history.push(g.entry)
	} else {
		g.entry.newOffset = off
	}

	s.overrides.openingOffset[g.openingID] = off
	s.rebuild()
	return true, nil
}

func (s *EditSession) stagePendingRoom(_ context.Context, _ Point, hit hitResult) (bool, error) {
	anchor := s.roomByID(hit.roomID)
	if anchor == nil {
		return false, nil
	}
	ppf := s.ppfByRoom[hit.roomID]
	if ppf <= 0 {
		ppf = s.params.Scale
	}
	size := defaultNewRoomFt * ppf
	ghost := neighborRect(hit.rect, hit.wall.Wall, size, size)
	s.pending = &PendingRoom{
		AnchorRoomID: hit.roomID,
		Wall:         hit.wall.Wall,
		LengthFt:     defaultNewRoomFt,
		WidthFt:      defaultNewRoomFt,
		Rect:         ghost,
	}
	return false, nil
}

// ConfirmPendingRoom persists the staged room with the confirmed name
// and dimensions, wiring the reciprocal adjacency to its anchor.
func (s *EditSession) ConfirmPendingRoom(ctx context.Context, name string, lengthFt, widthFt float64) (*models.Room, error) {
	p := s.pending
	if p == nil {
		return nil, nil
	}
	anchor := s.roomByID(p.AnchorRoomID)
	if anchor == nil {
		s.pending = nil
		return nil, nil
	}

	if name == "" {
		name = "New Room"
	}
	if lengthFt <= 0 {
		lengthFt = p.LengthFt
	}
	if widthFt <= 0 {
		widthFt = p.WidthFt
	}
	lengthFt = round1(lengthFt)
	widthFt = round1(widthFt)

	room := models.Room{
		ID:           uuid.NewString(),
		InspectionID: s.inspectionID,
		Name:         name,
		Status:       models.RoomNotStarted,
		ViewType:     models.ViewInterior,
		Structure:    anchor.Structure,
		LengthFt:     &lengthFt,
		WidthFt:      &widthFt,
	}
	adj := models.Adjacency{
		ID:             uuid.NewString(),
		InspectionID:   s.inspectionID,
		RoomIDA:        p.AnchorRoomID,
		RoomIDB:        room.ID,
		WallDirectionA: p.Wall.String(),
		WallDirectionB: p.Wall.Opposite().String(),
	}

	if err := s.store.CreateRoom(ctx, &room); err != nil {
		return nil, err
	}
	if err := s.store.CreateAdjacency(ctx, &adj); err != nil {
		return nil, err
	}
	s.history.push(&addRoomEntry{room: room, adjacency: &adj})

	s.state.Rooms = append(s.state.Rooms, room)
	s.state.Adjacencies = append(s.state.Adjacencies, adj)
	s.pending = nil
	s.rebuild()
	return &room, nil
}

// UpdatePendingRoom resizes the staged ghost before it is confirmed,
// keeping the preview rectangle in sync with the entry form.
func (s *EditSession) UpdatePendingRoom(lengthFt, widthFt float64) {
	p := s.pending
	if p == nil {
		return
	}
	if lengthFt > 0 {
		p.LengthFt = round1(lengthFt)
	}
	if widthFt > 0 {
		p.WidthFt = round1(widthFt)
	}
	anchor, ok := s.rects[p.AnchorRoomID]
	if !ok {
		return
	}
	ppf := s.ppfByRoom[p.AnchorRoomID]
	if ppf <= 0 {
		ppf = s.params.Scale
	}
	p.Rect = neighborRect(anchor, p.Wall, p.LengthFt*ppf, p.WidthFt*ppf)
}

// CancelPendingRoom discards the staged ghost.
func (s *EditSession) CancelPendingRoom() { s.pending = nil }

func (s *EditSession) placeDoor(ctx context.Context, _ Point, hit hitResult) (bool, error) {
	return s.placeOpening(ctx, hit, models.OpeningDoor, defaultDoorWidthFt, defaultDoorHeight)
}

func (s *EditSession) placeWindow(ctx context.Context, _ Point, hit hitResult) (bool, error) {
	return s.placeOpening(ctx, hit, models.OpeningWindow, defaultWindowWidth, defaultWindowHeight)
}

func (s *EditSession) placeOpening(ctx context.Context, hit hitResult, openingType string, widthFt, heightFt float64) (bool, error) {
	op := models.Opening{
		ID:             uuid.NewString(),
		RoomID:         hit.roomID,
		OpeningType:    openingType,
		WallDirection:  hit.wall.Wall.String(),
		PositionOnWall: round2(hit.wall.Offset),
		WidthFt:        widthFt,
		HeightFt:       heightFt,
		Quantity:       1,
	}
	if err := s.store.CreateOpening(ctx, &op); err != nil {
		return false, err
	}
	s.history.push(&addOpeningEntry{opening: op})
	s.state.Openings = append(s.state.Openings, op)
	s.rebuild()
	return true, nil
}

func (s *EditSession) placeDamage(ctx context.Context, model Point, hit hitResult) (bool, error) {
	rect := hit.rect
	var posX, posY float64 = 0.5, 0.5
	if rect.W > 0 && rect.H > 0 {
		posX = clamp01((model.X - rect.X) / rect.W)
		posY = clamp01((model.Y - rect.Y) / rect.H)
	}
	a := models.Annotation{
		ID:             uuid.NewString(),
		RoomID:         hit.roomID,
		AnnotationType: models.AnnotationDamage,
		Label:          "Damage",
		PosX:           posX,
		PosY:           posY,
	}
	if err := s.store.CreateAnnotation(ctx, &a); err != nil {
		return false, err
	}
	s.history.push(&addAnnotationEntry{annotation: a})
	s.state.Annotations = append(s.state.Annotations, a)
	s.rebuild()
	return true, nil
}

// DeleteOpening removes an opening as an undoable edit.
func (s *EditSession) DeleteOpening(ctx context.Context, id string) (bool, error) {
	op := s.openingByID(id)
	if op == nil {
		return false, nil
	}
	snapshot := *op
	if err := s.store.DeleteOpening(ctx, id); err != nil {
		return false, err
	}
	s.history.push(&deleteOpeningEntry{opening: snapshot})
	s.removeOpeningLocal(id)
	s.rebuild()
	return true, nil
}

// DeleteAnnotation removes an annotation as an undoable edit.
func (s *EditSession) DeleteAnnotation(ctx context.Context, id string) (bool, error) {
	a := s.annotationByID(id)
	if a == nil {
		return false, nil
	}
	snapshot := *a
	if err := s.store.DeleteAnnotation(ctx, id); err != nil {
		return false, err
	}
	s.history.push(&deleteAnnotationEntry{annotation: snapshot})
	s.removeAnnotationLocal(id)
	s.rebuild()
	return true, nil
}

// UpdateAnnotationText edits an annotation's label and value as an
// undoable edit.
func (s *EditSession) UpdateAnnotationText(ctx context.Context, id, label, value string) (bool, error) {
	a := s.annotationByID(id)
	if a == nil {
		return false, nil
	}
	if a.Label == label && a.Value == value {
		return false, nil
	}
	err := s.store.UpdateAnnotation(ctx, id, map[string]interface{}{
		"label": label,
		"value": value,
	})
	if err != nil {
		return false, err
	}
	s.history.push(&editAnnotationEntry{
		annotationID: id,
		oldLabel:     a.Label,
		oldValue:     a.Value,
		newLabel:     label,
		newValue:     value,
	})
	a.Label = label
	a.Value = value
	s.rebuild()
	return true, nil
}

func (s *EditSession) removeOpeningLocal(id string) {
	for i := range s.state.Openings {
		if s.state.Openings[i].ID == id {
			s.state.Openings = append(s.state.Openings[:i], s.state.Openings[i+1:]...)
			return
		}
	}
}

func (s *EditSession) removeAnnotationLocal(id string) {
	for i := range s.state.Annotations {
		if s.state.Annotations[i].ID == id {
			s.state.Annotations = append(s.state.Annotations[:i], s.state.Annotations[i+1:]...)
			return
		}
	}
}

// Undo reverts the most recent edit. A failure (say the record was
// deleted by another adjuster) is logged and the entry still moves to
// the redo stack, keeping the stacks consistent.
func (s *EditSession) Undo(ctx context.Context) bool {
	e, ok := s.history.popUndo()
	if !ok {
		return false
	}
	if err := e.undo(ctx, s.store); err != nil {
		s.log.Warnw("⚠️ Undo failed", "inspection", s.inspectionID, "kind", e.kind(), "error", err)
	}
	s.history.pushRedo(e)
	return true
}

// Redo re-applies the most recently undone edit.
func (s *EditSession) Redo(ctx context.Context) bool {
	e, ok := s.history.popRedo()
	if !ok {
		return false
	}
	if err := e.redo(ctx, s.store); err != nil {
		s.log.Warnw("⚠️ Redo failed", "inspection", s.inspectionID, "kind", e.kind(), "error", err)
	}
	s.history.pushUndoOnly(e)
	return true
}

// CanUndo reports whether an edit is available to revert.
func (s *EditSession) CanUndo() bool { return len(s.history.undoStack) > 0 }

// CanRedo reports whether an undone edit can be re-applied.
func (s *EditSession) CanRedo() bool { return len(s.history.redoStack) > 0 }

func distToSegment(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := clamp01(((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq)
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
