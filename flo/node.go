/*
 * Copyright 2022 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package flo

import (
    `fmt`
    `strconv`
)

// Width is the bit width of a node (or the depth of a memory), it is
// WidthUnknown until some inference step fills it in.
type Width int

const (
    WidthUnknown Width = -1
)

func (self Width) Known() bool {
    return self >= 0
}

func (self Width) String() string {
    if self.Known() {
        return strconv.Itoa(int(self))
    } else {
        return "?"
    }
}

// Node is a named value slot of the circuit. A node never changes after it
// has been created, and it is shared by reference among every operation that
// reads or writes it, so node identity is pointer identity.
type Node struct {
    name  string
    width Width
    depth Width
    cnst  bool
    mem   bool
}

// NewNode creates an ordinary (non-constant, non-memory) node.
func NewNode(name string, width Width) *Node {
    return &Node {
        name  : name,
        width : width,
        depth : WidthUnknown,
    }
}

// NewConst creates a constant node, the name is the literal text.
func NewConst(lit string, width Width) *Node {
    return &Node {
        name  : lit,
        width : width,
        depth : WidthUnknown,
        cnst  : true,
    }
}

// NewMem creates a memory node of depth words, each one width bits wide.
func NewMem(name string, width Width, depth Width) *Node {
    return &Node {
        name  : name,
        width : width,
        depth : depth,
        mem   : true,
    }
}

func (self *Node) Name() string  { return self.name }
func (self *Node) Width() Width  { return self.width }
func (self *Node) Depth() Width  { return self.depth }
func (self *Node) IsConst() bool { return self.cnst }
func (self *Node) IsMem() bool   { return self.mem }

func (self *Node) String() string {
    if self.width.Known() {
        return fmt.Sprintf("%s'%d", self.name, self.width)
    } else {
        return self.name
    }
}

// Temps mints temporaries for a rewrite of one graph. Names have the form
// "OPT<scope>_<n>" and any name already present in the seed graph is skipped,
// so a temporary never aliases an existing node. Minters with different scopes
// never collide with each other, which allows one minter per goroutine.
type Temps struct {
    g     *Graph
    next  int
    scope int
}

func NewTemps(g *Graph, scope int) *Temps {
    return &Temps {
        g     : g,
        scope : scope,
    }
}

// Make returns a fresh temporary sized like ref.
func (self *Temps) Make(ref *Node) *Node {
    for {
        name := fmt.Sprintf("OPT%d_%d", self.scope, self.next)
        self.next++

        /* skip names that are taken by the seed graph */
        if !self.g.HasName(name) {
            return NewNode(name, ref.Width())
        }
    }
}
